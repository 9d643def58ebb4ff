package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vestern/vestern/internal/domain"
	"github.com/vestern/vestern/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var accountSeq atomic.Int64

// nextAccountNumber returns an account number unique within the test run
func nextAccountNumber() domain.AccountNumber {
	return domain.AccountNumber(fmt.Sprintf("ACC%09d", 900000000+accountSeq.Add(1)))
}

// seedUser inserts a user for the account
func seedUser(t *testing.T, db *gorm.DB, account domain.AccountNumber) *schema.User {
	user := &schema.User{
		AccountNumber: account.String(),
		Email:         fmt.Sprintf("%s@example.com", account),
		PasswordHash:  "$2a$10$abcdefghijklmnopqrstuv",
		Balance:       decimal.RequireFromString("1000.50"),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedTransaction inserts a transaction for the account
func seedTransaction(t *testing.T, db *gorm.DB, account domain.AccountNumber, symbol string, at time.Time) *schema.Transaction {
	tx := &schema.Transaction{
		AccountNumber:   account.String(),
		TransactionType: domain.TransactionTypeBuy,
		StockSymbol:     symbol,
		Shares:          decimal.NewFromInt(10),
		PricePerShare:   decimal.RequireFromString("175.84"),
		TotalAmount:     decimal.RequireFromString("1758.40"),
		TransactionDate: at,
		Status:          "COMPLETED",
	}
	require.NoError(t, db.Create(tx).Error)
	return tx
}

func reloadTransaction(t *testing.T, db *gorm.DB, id uint64) schema.Transaction {
	var tx schema.Transaction
	require.NoError(t, db.Where("transaction_id = ?", id).Take(&tx).Error)
	return tx
}

// =============================================================================
// Test: GetLatestTransaction / UpdateTransactionField
// =============================================================================

func testGetLatestTransaction(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	t.Run("empty table returns nil without error", func(t *testing.T) {
		require.NoError(t, db.Exec("DELETE FROM transactions").Error)

		tx, err := store.GetLatestTransaction(ctx)
		require.NoError(t, err)
		assert.Nil(t, tx)
	})

	t.Run("returns the row with the highest transaction_id", func(t *testing.T) {
		account := nextAccountNumber()
		now := time.Now().UTC()
		// Dates deliberately out of order: selection is by identifier, not date
		first := seedTransaction(t, db, account, "AAPL", now)
		second := seedTransaction(t, db, account, "GOOGL", now.Add(-time.Hour))
		require.Greater(t, second.TransactionID, first.TransactionID)

		tx, err := store.GetLatestTransaction(ctx)
		require.NoError(t, err)
		require.NotNil(t, tx)
		assert.Equal(t, second.TransactionID, tx.TransactionID)
		assert.Equal(t, "GOOGL", tx.StockSymbol)
	})
}

func testUpdateTransactionField(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	account := nextAccountNumber()
	now := time.Now().UTC()

	t.Run("updates only the targeted row", func(t *testing.T) {
		a := seedTransaction(t, db, account, "AAPL", now)
		b := seedTransaction(t, db, account, "MSFT", now)
		value := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

		err := store.UpdateTransactionField(ctx, domain.TransactionID(a.TransactionID), domain.TokenFieldTransactionNumber, value)
		require.NoError(t, err)

		updated := reloadTransaction(t, db, a.TransactionID)
		require.NotNil(t, updated.TransactionNumber)
		assert.Equal(t, value, *updated.TransactionNumber)
		assert.Equal(t, "AAPL", updated.StockSymbol)
		assert.True(t, a.Shares.Equal(updated.Shares))

		untouched := reloadTransaction(t, db, b.TransactionID)
		assert.Nil(t, untouched.TransactionNumber)
	})

	t.Run("missing row returns ErrTransactionNotFound", func(t *testing.T) {
		err := store.UpdateTransactionField(ctx, domain.TransactionID(1<<62), domain.TokenFieldTransactionNumber, "x")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})

	t.Run("unknown field is rejected before touching the database", func(t *testing.T) {
		a := seedTransaction(t, db, account, "TSLA", now)

		err := store.UpdateTransactionField(ctx, domain.TransactionID(a.TransactionID), domain.TokenField("status"), "x")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidTokenField)
		assert.Equal(t, "COMPLETED", reloadTransaction(t, db, a.TransactionID).Status)
	})
}

func testEnsureInsertTrigger(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	t.Run("installs function and trigger idempotently", func(t *testing.T) {
		require.NoError(t, store.EnsureInsertTrigger(ctx, "test_tx_inserted"))
		require.NoError(t, store.EnsureInsertTrigger(ctx, "test_tx_inserted"))

		var count int64
		err := db.Raw(`SELECT count(*) FROM pg_trigger WHERE tgname = ? AND NOT tgisinternal`, domain.INSERT_TRIGGER_NAME).Scan(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		var source string
		err = db.Raw(`SELECT prosrc FROM pg_proc WHERE proname = ?`, domain.INSERT_TRIGGER_FUNCTION).Scan(&source).Error
		require.NoError(t, err)
		assert.Contains(t, source, "test_tx_inserted")
	})

	t.Run("rejects unsafe channel names", func(t *testing.T) {
		err := store.EnsureInsertTrigger(ctx, "x'); DROP TABLE transactions; --")
		assert.ErrorIs(t, err, domain.ErrInvalidChannel)
	})
}

// =============================================================================
// Test: account read views
// =============================================================================

func testAccountViews(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	account := nextAccountNumber()
	orphan := nextAccountNumber()
	user := seedUser(t, db, account)
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("user by account number", func(t *testing.T) {
		got, err := store.GetUserByAccountNumber(ctx, account)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Email, got.Email)
		assert.True(t, decimal.RequireFromString("1000.5").Equal(got.Balance))

		missing, err := store.GetUserByAccountNumber(ctx, orphan)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("transactions newest first with limit", func(t *testing.T) {
		for i := range 5 {
			seedTransaction(t, db, account, fmt.Sprintf("SYM%d", i), now.Add(time.Duration(i)*time.Minute))
		}
		// Rows for an account without a user are hidden by the join
		seedTransaction(t, db, orphan, "ORPH", now)

		txs, err := store.GetTransactionsByAccountNumber(ctx, account, 3)
		require.NoError(t, err)
		require.Len(t, txs, 3)
		assert.Equal(t, "SYM4", txs[0].StockSymbol)
		assert.Equal(t, "SYM3", txs[1].StockSymbol)
		assert.Equal(t, "SYM2", txs[2].StockSymbol)

		all, err := store.GetTransactionsByAccountNumber(ctx, account, 0)
		require.NoError(t, err)
		assert.Len(t, all, 5)

		hidden, err := store.GetTransactionsByAccountNumber(ctx, orphan, 10)
		require.NoError(t, err)
		assert.Empty(t, hidden)
	})

	t.Run("portfolio sorted by symbol", func(t *testing.T) {
		for _, sym := range []string{"MSFT", "AAPL"} {
			require.NoError(t, db.Create(&schema.PortfolioPosition{
				AccountNumber: account.String(),
				StockSymbol:   sym,
				Shares:        decimal.NewFromInt(3),
				AveragePrice:  decimal.RequireFromString("100.25"),
			}).Error)
		}

		positions, err := store.GetPortfolioByAccountNumber(ctx, account)
		require.NoError(t, err)
		require.Len(t, positions, 2)
		assert.Equal(t, "AAPL", positions[0].StockSymbol)
		assert.Equal(t, "MSFT", positions[1].StockSymbol)
		assert.True(t, decimal.RequireFromString("100.25").Equal(positions[0].AveragePrice))
	})

	t.Run("watchlist newest first", func(t *testing.T) {
		require.NoError(t, db.Create(&schema.WatchlistEntry{AccountNumber: account.String(), StockSymbol: "NVDA", AddedDate: now.Add(-time.Hour)}).Error)
		require.NoError(t, db.Create(&schema.WatchlistEntry{AccountNumber: account.String(), StockSymbol: "AMD", AddedDate: now}).Error)

		entries, err := store.GetWatchlistByAccountNumber(ctx, account)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "AMD", entries[0].StockSymbol)
		assert.Equal(t, "NVDA", entries[1].StockSymbol)
	})
}

// RunStoreTests runs every store test against a fresh store per test
func RunStoreTests(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB), cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store, *gorm.DB)
	}{
		{"GetLatestTransaction", testGetLatestTransaction},
		{"UpdateTransactionField", testUpdateTransactionField},
		{"EnsureInsertTrigger", testEnsureInsertTrigger},
		{"AccountViews", testAccountViews},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, db := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store, db)
		})
	}
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 10, open)
	assert.Equal(t, 2, idle)
	assert.Equal(t, 30*time.Minute, lifetime)
	assert.Equal(t, 5*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(1, 4, time.Minute, time.Minute)
	assert.Equal(t, 1, open)
	assert.Equal(t, 1, idle, "idle connections are clamped to the open limit")
}

func TestInsertTriggerStatements(t *testing.T) {
	stmts := insertTriggerStatements("tx_events")
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[0], "pg_notify('tx_events'")
	assert.Contains(t, stmts[0], "json_build_object('transaction_id', NEW.transaction_id)")
	assert.Contains(t, stmts[1], "DROP TRIGGER IF EXISTS "+domain.INSERT_TRIGGER_NAME)
	assert.Contains(t, stmts[2], "AFTER INSERT ON transactions FOR EACH ROW")
}
