package listener

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vestern/vestern/internal/adapter"
	"github.com/vestern/vestern/internal/domain"
	"github.com/vestern/vestern/internal/store"
	"github.com/vestern/vestern/internal/store/schema"
	"github.com/vestern/vestern/internal/token"
)

// startTestDatabase returns a DSN for an initialized database,
// using TEST_DB_HOST when set and a throwaway container otherwise
func startTestDatabase(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	if host := os.Getenv("TEST_DB_HOST"); host != "" {
		port := os.Getenv("TEST_DB_PORT")
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, envOr("TEST_DB_USER", "postgres"), envOr("TEST_DB_PASSWORD", "postgres"), envOr("TEST_DB_NAME", "vestern_test"))
	}

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("vestern_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestListenerIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dsn := startTestDatabase(t)
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	schemaSQL, err := os.ReadFile(filepath.Join("..", "..", "db", "init_pg_db.sql")) //nolint:gosec,G304
	require.NoError(t, err)
	require.NoError(t, db.Exec(string(schemaSQL)).Error)

	accountNumber := fmt.Sprintf("ACC%d", time.Now().UnixNano())
	require.NoError(t, db.Create(&schema.User{
		AccountNumber: accountNumber,
		Email:         accountNumber + "@example.com",
		PasswordHash:  "x",
		Balance:       decimal.NewFromInt(1000),
	}).Error)

	const channel = "listener_integration_inserted"
	l := New(&Config{
		ConnString:     dsn,
		Channel:        channel,
		Field:          domain.TokenFieldTransactionNumber,
		InstallTrigger: true,
	}, store.NewPGStore(db), adapter.NewPGConnector(), token.NewGenerator(adapter.NewRandom()),
		adapter.NewClock(), adapter.NewJSON(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	require.Eventually(t, func() bool { return l.State() == StateListening }, 15*time.Second, 20*time.Millisecond)

	insert := func(number string) *schema.Transaction {
		tx := &schema.Transaction{
			TransactionNumber: &number,
			AccountNumber:     accountNumber,
			TransactionType:   domain.TransactionTypeBuy,
			StockSymbol:       "VST",
			Shares:            decimal.NewFromInt(1),
			PricePerShare:     decimal.NewFromInt(10),
			TotalAmount:       decimal.NewFromInt(10),
			TransactionDate:   time.Now().UTC(),
			Status:            "COMPLETED",
		}
		require.NoError(t, db.Create(tx).Error)
		return tx
	}
	rewritten := func(tx *schema.Transaction, original string) func() bool {
		return func() bool {
			var got schema.Transaction
			if err := db.Take(&got, "transaction_id = ?", tx.TransactionID).Error; err != nil {
				return false
			}
			return got.TransactionNumber != nil && *got.TransactionNumber != original && token.Valid(*got.TransactionNumber)
		}
	}

	first := insert("manual-1")
	second := insert("manual-2")

	assert.Eventually(t, rewritten(first, "manual-1"), 10*time.Second, 50*time.Millisecond)
	assert.Eventually(t, rewritten(second, "manual-2"), 10*time.Second, 50*time.Millisecond)

	var a, b schema.Transaction
	require.NoError(t, db.Take(&a, "transaction_id = ?", first.TransactionID).Error)
	require.NoError(t, db.Take(&b, "transaction_id = ?", second.TransactionID).Error)
	assert.NotEqual(t, *a.TransactionNumber, *b.TransactionNumber)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("listener did not stop")
	}
	assert.Equal(t, StateStopped, l.State())
}
