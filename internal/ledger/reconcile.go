package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Munazil1/centswise/internal/domain"
)

type collection uint8

const (
	metricsCollection collection = 1 << iota
	creditsCollection
	expensesCollection
	itemsCollection

	moneyCollections    = metricsCollection | creditsCollection | expensesCollection
	propertyCollections = metricsCollection | itemsCollection
	allCollections      = moneyCollections | itemsCollection
)

type fetched struct {
	metrics  *domain.RemoteMetrics
	credits  []domain.Credit
	expenses []domain.Expense
	items    []domain.Item
	ok       collection
}

// reconcile fetches the requested collections concurrently and replaces each
// one that was fetched successfully. Records still waiting on their remote
// create survive the replacement.
func (s *Store) reconcile(ctx context.Context, which collection) {
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		res fetched
	)
	run := func(c collection, name string, fetch func() error) {
		if which&c == 0 {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := fetch()
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					s.log.ErrorContext(ctx, "Reconciliation fetch failed", "collection", name, "error", err)
				}
				return
			}
			mu.Lock()
			res.ok |= c
			mu.Unlock()
		}()
	}

	q := s.listQuery()
	run(metricsCollection, "metrics", func() error {
		m, err := s.remote.DashboardMetrics(ctx)
		res.metrics = &m
		return err
	})
	run(creditsCollection, "credits", func() (err error) {
		res.credits, err = s.remote.ListCredits(ctx, q)
		return err
	})
	run(expensesCollection, "expenses", func() (err error) {
		res.expenses, err = s.remote.ListExpenses(ctx, q)
		return err
	})
	run(itemsCollection, "items", func() (err error) {
		res.items, err = s.remote.ListItems(ctx, q)
		return err
	})
	wg.Wait()

	if res.ok == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.updateLocked(func(next *Snapshot) error {
		if res.ok&metricsCollection != 0 {
			next.RemoteMetrics = *res.metrics
		}
		if res.ok&creditsCollection != 0 {
			next.Credits = keepUnconfirmed(res.credits, next.Credits, s.unconfirmed, func(c domain.Credit) string { return c.ID })
		}
		if res.ok&expensesCollection != 0 {
			next.Expenses = keepUnconfirmed(res.expenses, next.Expenses, s.unconfirmed, func(e domain.Expense) string { return e.ID })
		}
		if res.ok&itemsCollection != 0 {
			items := keepUnconfirmed(res.items, next.Items, s.unconfirmed, func(it domain.Item) string { return it.ID })
			next.Items = overlayDistributions(items, next.Distributions)
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrClosed) {
		s.log.ErrorContext(ctx, "Failed to apply reconciliation", "error", err)
	}
}

// keepUnconfirmed returns fresh with the still-unconfirmed optimistic records
// of current placed in front.
func keepUnconfirmed[T any](fresh, current []T, unconfirmed map[string]struct{}, id func(T) string) []T {
	var out []T
	for _, v := range current {
		k := id(v)
		if !strings.HasPrefix(k, tempIDPrefix) {
			continue
		}
		if _, ok := unconfirmed[k]; ok {
			out = append(out, v)
		}
	}
	if fresh == nil && out == nil {
		return []T{}
	}
	return append(out, fresh...)
}

// overlayDistributions moves the quantities of outstanding local
// distributions from available to distributed on freshly fetched items.
func overlayDistributions(items []domain.Item, dists []domain.Distribution) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)
	for _, d := range dists {
		if !d.Outstanding() {
			continue
		}
		for i := range out {
			if out[i].ID != d.ItemID {
				continue
			}
			out[i].DistributedQuantity += d.Quantity
			if out[i].DistributedQuantity > out[i].TotalQuantity {
				out[i].DistributedQuantity = out[i].TotalQuantity
			}
			out[i].AvailableQuantity = out[i].TotalQuantity - out[i].DistributedQuantity
		}
	}
	return out
}
