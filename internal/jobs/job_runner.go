package jobs

import (
	"time"

	"github.com/Munazil1/centswise/internal/config"
	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/repository"
	"github.com/Munazil1/centswise/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	ledgers service.LedgerProvider
	journal repository.DistributionRepository
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a job runner. journal may be nil when no database is
// configured.
func NewJobRunner(ledgers service.LedgerProvider, journal repository.DistributionRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		ledgers: ledgers,
		journal: journal,
		config:  cfg,
		now:     time.Now,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// Run executes one job by name (for manual execution). It reports false for
// an unknown name.
func (jr *JobRunner) Run(name string) bool {
	switch name {
	case "refresh-ledger":
		jr.RefreshLedger()
	case "mark-overdue-distributions":
		jr.MarkOverdueDistributions()
	case "all":
		jr.RunAll()
	default:
		return false
	}
	return true
}

// RunAll runs every job once
func (jr *JobRunner) RunAll() {
	jr.RefreshLedger()
	jr.MarkOverdueDistributions()
}
