package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/service"
)

// MarkOverdueDistributions marks distributions as overdue once their expected
// return date has passed. With an active session the store does it (and
// journals the change); otherwise the journal is updated directly.
func (jr *JobRunner) MarkOverdueDistributions() {
	jr.runWithRecovery("MarkOverdueDistributions", func() {
		count, err := jr.markOverdue(context.Background())
		if err != nil {
			logger.Error("Failed to mark overdue distributions", "error", err)
			return
		}
		logger.Info("Marked distributions as overdue", "count", count)
	})
}

func (jr *JobRunner) markOverdue(ctx context.Context) (int, error) {
	asOf := jr.now().UTC()

	store, err := jr.ledgers.Ledger()
	switch {
	case err == nil:
		return store.MarkOverdue(ctx, asOf)
	case !errors.Is(err, service.ErrNotAuthenticated):
		return 0, err
	}

	if jr.journal == nil {
		logger.Debug("No active session and no journal, skipping overdue check")
		return 0, nil
	}
	ids, err := jr.journal.MarkOverdue(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("journal mark overdue: %w", err)
	}
	for _, id := range ids {
		logger.Debug("Marked distribution as overdue", "distribution_id", id)
	}
	return len(ids), nil
}
