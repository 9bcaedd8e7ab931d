package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

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
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'refresh-ledger', 'mark-overdue-distributions', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CentsWise Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// Initialize Database
	var journal repository.DistributionRepository
	var storeOpts []ledger.Option
	if cfg.JournalEnabled() {
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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
	}

	// Reuse a persisted session, if any, so jobs can work on the live ledger
	var tokens session.TokenStore = session.NewFileTokenStore(cfg.Session.TokenFile)
	if cfg.Session.Store == "redis" {
		rs := session.NewRedisTokenStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Session.RedisKey)
		defer rs.Close()
		tokens = rs
	}
	sess := session.New(tokens)
	client, err := remote.NewClient(cfg.Remote.BaseURL, sess, remote.WithTimeout(cfg.RemoteTimeout()))
	if err != nil {
		log.Fatalf("Failed to create ledger service client: %v", err)
	}
	storeOpts = append(storeOpts, ledger.WithSettleDelay(cfg.SettleDelay()), ledger.WithPageSize(cfg.Ledger.PageSize))
	authSvc := service.NewAuthService(client, sess, func() *ledger.Store {
		return ledger.New(client, storeOpts...)
	})
	defer authSvc.Close()
	if ok, err := authSvc.Resume(ctx); err != nil {
		logger.Warn("Could not restore session", "error", err)
	} else if !ok {
		logger.Info("No active session, jobs run against the journal only")
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(authSvc, journal, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !jobRunner.Run(*runOnce) {
			logger.Error("Unknown job name", "job", *runOnce)
			fmt.Printf("Available jobs:\n")
			fmt.Printf("  - refresh-ledger\n")
			fmt.Printf("  - mark-overdue-distributions\n")
			fmt.Printf("  - all\n")
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
