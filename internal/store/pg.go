package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vestern/vestern/internal/domain"
	"github.com/vestern/vestern/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 30 minutes
//   - ConnMaxIdleTime: 5 minutes
//
// MaxIdleConns never exceeds MaxOpenConns.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 30 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 5 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// GetLatestTransaction retrieves the most recently created transaction
func (s *pgStore) GetLatestTransaction(ctx context.Context) (*schema.Transaction, error) {
	var tx schema.Transaction
	// Take keeps this ordering; First and Last append their own primary key order
	err := s.db.WithContext(ctx).
		Order("transaction_id DESC").
		Limit(1).
		Take(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest transaction: %w", err)
	}
	return &tx, nil
}

// UpdateTransactionField writes value into a token column of one transaction
func (s *pgStore) UpdateTransactionField(ctx context.Context, transactionID domain.TransactionID, field domain.TokenField, value string) error {
	if !field.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTokenField, field)
	}

	result := s.db.WithContext(ctx).
		Model(&schema.Transaction{}).
		Where("transaction_id = ?", uint64(transactionID)).
		Update(string(field), value)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s of transaction %d: %w", field, transactionID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: transaction_id=%d", domain.ErrTransactionNotFound, transactionID)
	}
	return nil
}

// EnsureInsertTrigger installs or replaces the insert notification trigger
func (s *pgStore) EnsureInsertTrigger(ctx context.Context, channel string) error {
	if err := domain.ValidateChannel(channel); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range insertTriggerStatements(channel) {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to install insert trigger: %w", err)
	}
	return nil
}

// GetUserByAccountNumber retrieves a user by account number
func (s *pgStore) GetUserByAccountNumber(ctx context.Context, accountNumber domain.AccountNumber) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).
		Where("account_number = ?", accountNumber.String()).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetPortfolioByAccountNumber retrieves the positions of an existing user
func (s *pgStore) GetPortfolioByAccountNumber(ctx context.Context, accountNumber domain.AccountNumber) ([]schema.PortfolioPosition, error) {
	var positions []schema.PortfolioPosition
	err := s.db.WithContext(ctx).
		Select("portfolio.*").
		Joins("INNER JOIN users u ON u.account_number = portfolio.account_number").
		Where("portfolio.account_number = ?", accountNumber.String()).
		Order("portfolio.stock_symbol ASC").
		Find(&positions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return positions, nil
}

// GetTransactionsByAccountNumber retrieves the latest transactions of an existing user
func (s *pgStore) GetTransactionsByAccountNumber(ctx context.Context, accountNumber domain.AccountNumber, limit int) ([]schema.Transaction, error) {
	if limit <= 0 || limit > domain.MAX_TRANSACTIONS_LIMIT {
		limit = domain.MAX_TRANSACTIONS_LIMIT
	}

	var transactions []schema.Transaction
	err := s.db.WithContext(ctx).
		Select("transactions.*").
		Joins("INNER JOIN users u ON u.account_number = transactions.account_number").
		Where("transactions.account_number = ?", accountNumber.String()).
		Order("transactions.transaction_date DESC, transactions.transaction_id DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// GetWatchlistByAccountNumber retrieves the watchlist of an account
func (s *pgStore) GetWatchlistByAccountNumber(ctx context.Context, accountNumber domain.AccountNumber) ([]schema.WatchlistEntry, error) {
	var entries []schema.WatchlistEntry
	err := s.db.WithContext(ctx).
		Where("account_number = ?", accountNumber.String()).
		Order("added_date DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}
	return entries, nil
}
