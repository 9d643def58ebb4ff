package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vestern/vestern/internal/adapter"
	"github.com/vestern/vestern/internal/assigner"
	"github.com/vestern/vestern/internal/config"
	"github.com/vestern/vestern/internal/logger"
	"github.com/vestern/vestern/internal/store"
	"github.com/vestern/vestern/internal/token"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	os.Exit(run())
}

// run performs one assignment and returns the exit code.
// Deferred cleanup, including closing the database, runs before the process exits.
func run() int {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadTokenAssignerConfig(*configFile, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Interrupts cancel the wait before the update
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Service:         "token-assigner",
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting token assigner")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to connect to database: %w", err), zap.String("dsn", cfg.Database.RedactedDSN()))
		return 1
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to get sql.DB: %w", err))
		return 1
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to configure connection pool: %w", err))
		return 1
	}

	a := assigner.New(
		&assigner.Config{
			Delay: cfg.Assigner.Delay,
			Field: cfg.Assigner.Field,
		},
		store.NewPGStore(db),
		token.NewGenerator(adapter.NewRandom()),
		adapter.NewClock(),
	)

	result, err := a.Assign(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err)
		return 1
	}
	if result != nil {
		logger.InfoCtx(ctx, "Token assigner finished",
			zap.Uint64("transaction_id", uint64(result.TransactionID)),
			zap.String("token_prefix", token.Prefix(result.Token)),
		)
	}

	return 0
}
