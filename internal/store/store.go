package store

import (
	"context"

	"github.com/vestern/vestern/internal/domain"
	"github.com/vestern/vestern/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetLatestTransaction retrieves the transaction with the highest transaction_id.
	// Returns nil without error when the table is empty.
	GetLatestTransaction(ctx context.Context) (*schema.Transaction, error)
	// UpdateTransactionField writes value into the given token column of one transaction.
	// Returns domain.ErrTransactionNotFound when no row matches.
	UpdateTransactionField(ctx context.Context, transactionID domain.TransactionID, field domain.TokenField, value string) error
	// EnsureInsertTrigger installs the trigger that publishes every transactions insert on channel
	EnsureInsertTrigger(ctx context.Context, channel string) error

	// GetUserByAccountNumber retrieves a user. Returns nil without error when absent.
	GetUserByAccountNumber(ctx context.Context, accountNumber domain.AccountNumber) (*schema.User, error)
	// GetPortfolioByAccountNumber retrieves all positions held by an account
	GetPortfolioByAccountNumber(ctx context.Context, accountNumber domain.AccountNumber) ([]schema.PortfolioPosition, error)
	// GetTransactionsByAccountNumber retrieves the most recent transactions of an account, newest first
	GetTransactionsByAccountNumber(ctx context.Context, accountNumber domain.AccountNumber, limit int) ([]schema.Transaction, error)
	// GetWatchlistByAccountNumber retrieves the symbols watched by an account
	GetWatchlistByAccountNumber(ctx context.Context, accountNumber domain.AccountNumber) ([]schema.WatchlistEntry, error)
}
