package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/service"
)

const refreshTimeout = time.Minute

// RefreshLedger re-fetches every mirrored collection so changes made by other
// clients of the ledger service show up. Without a session there is nothing
// to refresh.
func (jr *JobRunner) RefreshLedger() {
	jr.runWithRecovery("RefreshLedger", func() {
		store, err := jr.ledgers.Ledger()
		if errors.Is(err, service.ErrNotAuthenticated) {
			logger.Debug("No active session, skipping ledger refresh")
			return
		}
		if err != nil {
			logger.Error("Failed to get ledger store", "error", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		store.Refresh(ctx)

		m := store.Metrics()
		logger.Info("Ledger refreshed",
			"available_balance", m.AvailableBalance.StringFixed(2),
			"available_items", m.AvailableItems,
			"distributed_items", m.DistributedItems)
	})
}
