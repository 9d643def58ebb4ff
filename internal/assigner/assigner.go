package assigner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vestern/vestern/internal/adapter"
	"github.com/vestern/vestern/internal/domain"
	"github.com/vestern/vestern/internal/logger"
	"github.com/vestern/vestern/internal/store"
	"github.com/vestern/vestern/internal/token"
)

// Config holds configuration for the token assigner
type Config struct {
	Delay time.Duration     // Wait between generating the token and writing it
	Field domain.TokenField // Column receiving the token
}

// Result describes the single mutation performed by a run
type Result struct {
	TransactionID domain.TransactionID
	Field         domain.TokenField
	Token         string
}

// Assigner writes a fresh token onto the most recently created transaction
type Assigner interface {
	// Assign performs at most one update. It returns (nil, nil) when there is no transaction.
	Assign(ctx context.Context) (*Result, error)
}

type assigner struct {
	config    *Config
	store     store.Store
	generator token.Generator
	clock     adapter.Clock
}

// New creates a new token assigner
func New(config *Config, st store.Store, generator token.Generator, clock adapter.Clock) Assigner {
	return &assigner{
		config:    config,
		store:     st,
		generator: generator,
		clock:     clock,
	}
}

func (a *assigner) Assign(ctx context.Context) (*Result, error) {
	tx, err := a.store.GetLatestTransaction(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest transaction: %w", err)
	}
	if tx == nil {
		logger.InfoCtx(ctx, "No transactions found, nothing to assign")
		return nil, nil
	}

	id := domain.TransactionID(tx.TransactionID)
	tok, err := a.generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.InfoCtx(ctx, "Assigning token to latest transaction",
		zap.Uint64("transaction_id", uint64(id)),
		zap.String("field", string(a.config.Field)),
		zap.String("token_prefix", token.Prefix(tok)),
		zap.Duration("delay", a.config.Delay),
	)

	if a.config.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-a.clock.After(a.config.Delay):
		}
	}

	if err := a.store.UpdateTransactionField(ctx, id, a.config.Field, tok); err != nil {
		return nil, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}

	logger.InfoCtx(ctx, "Token assigned", zap.Uint64("transaction_id", uint64(id)))

	return &Result{
		TransactionID: id,
		Field:         a.config.Field,
		Token:         tok,
	}, nil
}
