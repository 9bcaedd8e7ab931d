package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/Munazil1/centswise/internal/api/http"
	"github.com/Munazil1/centswise/internal/config"
	"github.com/Munazil1/centswise/internal/jobs"
	"github.com/Munazil1/centswise/internal/ledger"
	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/remote"
	"github.com/Munazil1/centswise/internal/repository"
	"github.com/Munazil1/centswise/internal/repository/postgres"
	"github.com/Munazil1/centswise/internal/scheduler"
	"github.com/Munazil1/centswise/internal/service"
	"github.com/Munazil1/centswise/internal/session"
	"github.com/Munazil1/centswise/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	withScheduler := flag.Bool("scheduler", true, "Run the cron jobs inside the server process")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CentsWise dashboard...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Ledger service", "base_url", cfg.Remote.BaseURL, "timeout", cfg.RemoteTimeout())

	ctx := context.Background()

	// Session token store
	tokens, closeTokens, err := newTokenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	defer closeTokens()
	sess := session.New(tokens)

	// Remote ledger service client
	client, err := remote.NewClient(cfg.Remote.BaseURL, sess, remote.WithTimeout(cfg.RemoteTimeout()))
	if err != nil {
		log.Fatalf("Failed to create ledger service client: %v", err)
	}

	// Optional distribution journal
	var journal repository.DistributionRepository
	storeOpts := []ledger.Option{
		ledger.WithSettleDelay(cfg.SettleDelay()),
		ledger.WithPageSize(cfg.Ledger.PageSize),
	}
	if cfg.JournalEnabled() {
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		pg := postgres.NewStore(db)
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate distribution journal: %v", err)
		}
		logger.Info("Database connection established")
		journal = pg
		storeOpts = append(storeOpts, ledger.WithJournal(pg))
	} else {
		logger.Info("Distribution journal disabled, distributions are kept in memory only")
	}

	// Receipt archive
	archive, err := storage.New(ctx, storage.Config{
		Type:   cfg.Storage.Type,
		Dir:    cfg.Storage.Dir,
		Bucket: cfg.Storage.Bucket,
		Region: cfg.Storage.Region,
		Prefix: cfg.Storage.Prefix,
	})
	if err != nil {
		log.Fatalf("Failed to initialize receipt archive: %v", err)
	}
	logger.Info("Receipt archive ready", "type", cfg.Storage.Type)

	// Receipt mail
	var mailer service.Mailer
	if cfg.EmailEnabled() {
		mailer = service.NewSendGridMailer(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
		logger.Info("Receipt e-mail enabled", "from", cfg.Email.FromEmail)
	}

	// Initialize Services
	authSvc := service.NewAuthService(client, sess, func() *ledger.Store {
		return ledger.New(client, storeOpts...)
	})
	defer authSvc.Close()
	moneySvc := service.NewMoneyService(authSvc)
	propertySvc := service.NewPropertyService(authSvc)
	receiptSvc := service.NewReceiptService(client, authSvc, archive, mailer)

	resumed, err := authSvc.Resume(ctx)
	if err != nil {
		logger.Warn("Could not restore previous session", "error", err)
	}
	logger.Info("Session state", "resumed", resumed)

	// Scheduler
	if *withScheduler {
		cronScheduler, err := scheduler.NewScheduler(jobs.NewJobRunner(authSvc, journal, cfg))
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	// HTTP server
	handler := httpapi.NewHandler(authSvc, moneySvc, propertySvc, receiptSvc, client)
	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errCh:
		logger.Error("HTTP server error", "error", err)
	}

	// Graceful shutdown
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if store, err := authSvc.Ledger(); err == nil {
		if err := store.Drain(shutdownCtx); err != nil {
			logger.Warn("Pending ledger writes did not finish", "error", err)
		}
	}
	logger.Info("Server stopped. Goodbye!")
}

// newTokenStore builds the configured session token store and a func that
// releases it.
func newTokenStore(ctx context.Context, cfg *config.Config) (session.TokenStore, func(), error) {
	switch cfg.Session.Store {
	case "redis":
		rs := session.NewRedisTokenStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Session.RedisKey)
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, nil, err
		}
		logger.Info("Session tokens stored in redis", "addr", cfg.Redis.Addr, "key", cfg.Session.RedisKey)
		return rs, func() { rs.Close() }, nil
	case "memory":
		return session.NewMemoryTokenStore(), func() {}, nil
	default:
		logger.Info("Session tokens stored on disk", "path", cfg.Session.TokenFile)
		return session.NewFileTokenStore(cfg.Session.TokenFile), func() {}, nil
	}
}
