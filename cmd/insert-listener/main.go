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
	"github.com/vestern/vestern/internal/config"
	"github.com/vestern/vestern/internal/listener"
	"github.com/vestern/vestern/internal/logger"
	"github.com/vestern/vestern/internal/messaging"
	"github.com/vestern/vestern/internal/providers/jetstream"
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

func run() int {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadInsertListenerConfig(*configFile, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Service:         "insert-listener",
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting insert listener")

	// Connect to database; used for the trigger DDL and the updates
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

	jsonAdapter := adapter.NewJSON()

	// Rewrite events are optional
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("url", cfg.NATS.URL))
			return 1
		}
		defer publisher.Close()
	} else {
		logger.InfoCtx(ctx, "NATS not configured, rewrite events are disabled")
	}

	l := listener.New(
		&listener.Config{
			ConnString:     cfg.Database.URL(),
			Channel:        cfg.Listener.Channel,
			Field:          cfg.Listener.Field,
			ProcessDelay:   cfg.Listener.ProcessDelay,
			InstallTrigger: cfg.Listener.InstallTrigger,
		},
		store.NewPGStore(db),
		adapter.NewPGConnector(),
		token.NewGenerator(adapter.NewRandom()),
		adapter.NewClock(),
		jsonAdapter,
		publisher,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- l.Run(ctx)
	}()

	// Wait for interrupt signal or a listener failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		if err := <-errCh; err != nil {
			logger.Error(err, zap.String("component", "listener"))
			return 1
		}
	case err := <-errCh:
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "listener"), zap.Stringer("state", l.State()))
			return 1
		}
	}

	logger.Info("Insert listener stopped")
	return 0
}
