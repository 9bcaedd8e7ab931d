package ledger

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/receipt"
)

const recentTransactionLimit = 10

func (s *Store) Credits() []domain.Credit {
	return slices.Clone(s.snap.Load().Credits)
}

func (s *Store) Expenses() []domain.Expense {
	return slices.Clone(s.snap.Load().Expenses)
}

func (s *Store) Items() []domain.Item {
	return slices.Clone(s.snap.Load().Items)
}

func (s *Store) Distributions() []domain.Distribution {
	return slices.Clone(s.snap.Load().Distributions)
}

func (s *Store) Item(id string) (domain.Item, bool) {
	snap := s.snap.Load()
	if i := snap.itemIndex(id); i >= 0 {
		return snap.Items[i], true
	}
	return domain.Item{}, false
}

func (s *Store) Credit(id string) (domain.Credit, bool) {
	for _, c := range s.snap.Load().Credits {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Credit{}, false
}

// NextReceiptNumber is the serial the next recorded credit will receive.
func (s *Store) NextReceiptNumber() string {
	return receipt.Next(s.snap.Load().Credits, s.now())
}

// Metrics derives the dashboard aggregates from the current collections.
func (s *Store) Metrics() domain.DashboardMetrics {
	snap := s.snap.Load()
	var m domain.DashboardMetrics
	for _, c := range snap.Credits {
		m.TotalCollected = m.TotalCollected.Add(c.Amount)
	}
	for _, e := range snap.Expenses {
		m.TotalSpent = m.TotalSpent.Add(e.Amount)
	}
	m.AvailableBalance = m.TotalCollected.Sub(m.TotalSpent)
	for _, it := range snap.Items {
		m.TotalItems += it.TotalQuantity
		m.DistributedItems += it.DistributedQuantity
		m.AvailableItems += it.AvailableQuantity
	}
	return m
}

// RemoteMetrics returns the figures from the last successful metrics fetch.
func (s *Store) RemoteMetrics() domain.RemoteMetrics {
	return s.snap.Load().RemoteMetrics
}

// AvailableBalance is shorthand for Metrics().AvailableBalance.
func (s *Store) AvailableBalance() decimal.Decimal {
	return s.Metrics().AvailableBalance
}

// RecentTransactions merges credits and expenses, newest date first, and
// keeps the first ten. Entries with the same date keep their relative order.
func (s *Store) RecentTransactions() []domain.Transaction {
	snap := s.snap.Load()
	txs := make([]domain.Transaction, 0, len(snap.Credits)+len(snap.Expenses))
	for _, c := range snap.Credits {
		txs = append(txs, domain.Transaction{
			ID:          c.ID,
			Type:        domain.TransactionTypeCredit,
			Amount:      c.Amount,
			Description: c.Purpose,
			Date:        c.Date,
			Name:        c.DonorName,
		})
	}
	for _, e := range snap.Expenses {
		txs = append(txs, domain.Transaction{
			ID:          e.ID,
			Type:        domain.TransactionTypeExpense,
			Amount:      e.Amount,
			Description: e.Purpose,
			Date:        e.Date,
			Name:        e.BeneficiaryName,
		})
	}
	slices.SortStableFunc(txs, func(a, b domain.Transaction) int {
		return txDate(b).Compare(txDate(a))
	})
	if len(txs) > recentTransactionLimit {
		txs = txs[:recentTransactionLimit]
	}
	return txs
}

func txDate(t domain.Transaction) time.Time {
	d, _ := domain.ParseDate(t.Date)
	return d
}
