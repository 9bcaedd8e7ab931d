package ledger

import (
	"slices"

	"github.com/Munazil1/centswise/internal/domain"
)

// Snapshot is one immutable version of the mirrored collections. Published
// snapshots are never modified; writers clone, edit and swap.
type Snapshot struct {
	Credits       []domain.Credit
	Expenses      []domain.Expense
	Items         []domain.Item
	Distributions []domain.Distribution
	RemoteMetrics domain.RemoteMetrics
}

func (s *Snapshot) clone() *Snapshot {
	return &Snapshot{
		Credits:       slices.Clone(s.Credits),
		Expenses:      slices.Clone(s.Expenses),
		Items:         slices.Clone(s.Items),
		Distributions: slices.Clone(s.Distributions),
		RemoteMetrics: s.RemoteMetrics,
	}
}

func (s *Snapshot) itemIndex(id string) int {
	return slices.IndexFunc(s.Items, func(it domain.Item) bool { return it.ID == id })
}

func (s *Snapshot) distributionIndex(id string) int {
	return slices.IndexFunc(s.Distributions, func(d domain.Distribution) bool { return d.ID == id })
}

func prepend[T any](v T, list []T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}
