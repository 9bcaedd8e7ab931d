package ledger

import (
	"context"
	"slices"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/Munazil1/centswise/internal/domain"
)

type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) DashboardMetrics(ctx context.Context) (domain.RemoteMetrics, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RemoteMetrics), args.Error(1)
}

func (m *MockRemote) ListCredits(ctx context.Context, q domain.ListQuery) ([]domain.Credit, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockRemote) CreateCredit(ctx context.Context, d domain.CreditDraft) (domain.Credit, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(domain.Credit), args.Error(1)
}

func (m *MockRemote) ListExpenses(ctx context.Context, q domain.ListQuery) ([]domain.Expense, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockRemote) CreateExpense(ctx context.Context, d domain.ExpenseDraft) (domain.Expense, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(domain.Expense), args.Error(1)
}

func (m *MockRemote) ListItems(ctx context.Context, q domain.ListQuery) ([]domain.Item, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockRemote) CreateItem(ctx context.Context, d domain.ItemDraft) (domain.Item, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(domain.Item), args.Error(1)
}

type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Save(ctx context.Context, d domain.Distribution) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockJournal) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJournal) List(ctx context.Context) ([]domain.Distribution, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Distribution), args.Error(1)
}

// memJournal keeps saved distributions in memory, newest first.
type memJournal struct {
	mu   sync.Mutex
	rows []domain.Distribution
}

func (j *memJournal) Save(_ context.Context, d domain.Distribution) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := range j.rows {
		if j.rows[i].ID == d.ID {
			j.rows[i] = d
			return nil
		}
	}
	j.rows = append([]domain.Distribution{d}, j.rows...)
	return nil
}

func (j *memJournal) Delete(_ context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.rows = slices.DeleteFunc(j.rows, func(d domain.Distribution) bool { return d.ID == id })
	return nil
}

func (j *memJournal) List(_ context.Context) ([]domain.Distribution, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.rows), nil
}

func (j *memJournal) get(id string) (domain.Distribution, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	i := slices.IndexFunc(j.rows, func(d domain.Distribution) bool { return d.ID == id })
	if i < 0 {
		return domain.Distribution{}, false
	}
	return j.rows[i], true
}
