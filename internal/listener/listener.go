package listener

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vestern/vestern/internal/adapter"
	"github.com/vestern/vestern/internal/domain"
	"github.com/vestern/vestern/internal/logger"
	"github.com/vestern/vestern/internal/messaging"
	"github.com/vestern/vestern/internal/store"
	"github.com/vestern/vestern/internal/token"
)

const CLOSE_TIMEOUT = 5 * time.Second

// Config holds configuration for the insert listener
type Config struct {
	ConnString     string            // Connection string for the dedicated LISTEN connection
	Channel        string            // Notification channel
	Field          domain.TokenField // Column rewritten for each inserted row
	ProcessDelay   time.Duration     // Pause before rewriting each row
	InstallTrigger bool              // Install the insert trigger during startup
}

// Listener reacts to transaction inserts by rewriting a token column of the inserted row
type Listener interface {
	// Run blocks until ctx is done or the connection fails.
	// It returns nil on cancellation and an error when startup or the connection fails.
	Run(ctx context.Context) error
	// State reports the current lifecycle phase; safe for concurrent use
	State() State
}

type listener struct {
	config    *Config
	store     store.Store
	connector adapter.PGConnector
	generator token.Generator
	clock     adapter.Clock
	json      adapter.JSON
	publisher messaging.Publisher
	state     atomic.Int32
	running   atomic.Bool
}

// New creates a new insert listener. publisher may be nil to disable rewrite events.
func New(
	config *Config,
	st store.Store,
	connector adapter.PGConnector,
	generator token.Generator,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
	publisher messaging.Publisher,
) Listener {
	l := &listener{
		config:    config,
		store:     st,
		connector: connector,
		generator: generator,
		clock:     clock,
		json:      jsonAdapter,
		publisher: publisher,
	}
	l.state.Store(int32(StateConnecting))
	return l
}

func (l *listener) State() State {
	return State(l.state.Load())
}

func (l *listener) setState(s State) {
	l.state.Store(int32(s))
	logger.Debug("Listener state changed", zap.Stringer("state", s))
}

func (l *listener) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("listener already running")
	}
	defer l.running.Store(false)

	l.setState(StateConnecting)

	conn, err := l.connect(ctx)
	if err != nil {
		l.setState(StateStopped)
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), CLOSE_TIMEOUT)
		defer cancel()
		if err := conn.Close(closeCtx); err != nil {
			logger.Warn("Failed to close listener connection", zap.Error(err))
		}
	}()

	logger.InfoCtx(ctx, "Listening for transaction inserts",
		zap.String("channel", l.config.Channel),
		zap.String("field", string(l.config.Field)),
	)
	l.setState(StateListening)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			l.setState(StateStopped)
			if ctx.Err() != nil {
				logger.InfoCtx(ctx, "Listener stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("failed to wait for notification: %w", err)
		}

		l.setState(StateProcessing)
		l.process(ctx, n)
		l.setState(StateListening)
	}
}

// connect opens the LISTEN connection, installs the trigger and subscribes to the channel
func (l *listener) connect(ctx context.Context) (adapter.PGListenerConn, error) {
	conn, err := l.connector.Connect(ctx, l.config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if l.config.InstallTrigger {
		if err := l.store.EnsureInsertTrigger(ctx, l.config.Channel); err != nil {
			_ = conn.Close(context.Background())
			return nil, fmt.Errorf("failed to install insert trigger: %w", err)
		}
		logger.InfoCtx(ctx, "Insert trigger installed", zap.String("channel", l.config.Channel))
	}

	if err := conn.Listen(ctx, l.config.Channel); err != nil {
		_ = conn.Close(context.Background())
		return nil, fmt.Errorf("failed to listen on channel %s: %w", l.config.Channel, err)
	}

	return conn, nil
}

// process handles one notification. Failures are logged and never end the loop.
func (l *listener) process(ctx context.Context, n *adapter.Notification) {
	if n.Channel != l.config.Channel {
		logger.DebugCtx(ctx, "Ignoring notification from another channel", zap.String("channel", n.Channel))
		return
	}

	id, err := l.parsePayload(n.Payload)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("payload", n.Payload))
		return
	}

	if l.config.ProcessDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-l.clock.After(l.config.ProcessDelay):
		}
	}

	tok, err := l.generator.Generate()
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to generate token: %w", err), zap.Uint64("transaction_id", uint64(id)))
		return
	}

	if err := l.store.UpdateTransactionField(ctx, id, l.config.Field, tok); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to rewrite transaction: %w", err),
			zap.Uint64("transaction_id", uint64(id)),
			zap.String("field", string(l.config.Field)),
		)
		return
	}

	logger.InfoCtx(ctx, "Transaction rewritten",
		zap.Uint64("transaction_id", uint64(id)),
		zap.String("field", string(l.config.Field)),
		zap.String("token_prefix", token.Prefix(tok)),
	)

	if l.publisher == nil {
		return
	}

	event := &domain.TokenRewrittenEvent{
		EventID:       uuid.NewString(),
		TransactionID: id,
		Field:         l.config.Field,
		TokenPrefix:   token.Prefix(tok),
		RewrittenAt:   l.clock.Now().UTC(),
	}
	if err := l.publisher.PublishTokenRewritten(ctx, event); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish rewrite event: %w", err),
			zap.Uint64("transaction_id", uint64(id)))
	}
}

func (l *listener) parsePayload(payload string) (domain.TransactionID, error) {
	var msg domain.TransactionInserted
	if err := l.json.Unmarshal([]byte(payload), &msg); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err)
	}
	if msg.TransactionID == 0 {
		return 0, fmt.Errorf("%w: missing transaction_id", domain.ErrInvalidPayload)
	}
	return msg.TransactionID, nil
}
