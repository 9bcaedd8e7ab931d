package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/ledger"
	"github.com/Munazil1/centswise/internal/remote"
	"github.com/Munazil1/centswise/internal/service"
)

type MockLedgerRemote struct {
	mock.Mock
}

func (m *MockLedgerRemote) DashboardMetrics(ctx context.Context) (domain.RemoteMetrics, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RemoteMetrics), args.Error(1)
}

func (m *MockLedgerRemote) ListCredits(ctx context.Context, q domain.ListQuery) ([]domain.Credit, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockLedgerRemote) CreateCredit(ctx context.Context, d domain.CreditDraft) (domain.Credit, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(domain.Credit), args.Error(1)
}

func (m *MockLedgerRemote) ListExpenses(ctx context.Context, q domain.ListQuery) ([]domain.Expense, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockLedgerRemote) CreateExpense(ctx context.Context, d domain.ExpenseDraft) (domain.Expense, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(domain.Expense), args.Error(1)
}

func (m *MockLedgerRemote) ListItems(ctx context.Context, q domain.ListQuery) ([]domain.Item, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockLedgerRemote) CreateItem(ctx context.Context, d domain.ItemDraft) (domain.Item, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(domain.Item), args.Error(1)
}

type MockAuthRemote struct {
	mock.Mock
}

func (m *MockAuthRemote) Login(ctx context.Context, username, password string) (remote.LoginResult, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(remote.LoginResult), args.Error(1)
}

func (m *MockAuthRemote) CurrentUser(ctx context.Context) (domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockAuthRemote) ChangePassword(ctx context.Context, current, next string) (string, error) {
	args := m.Called(ctx, current, next)
	return args.String(0), args.Error(1)
}

type MockReceiptRemote struct {
	mock.Mock
}

func (m *MockReceiptRemote) GenerateReceipt(ctx context.Context, creditID string) (domain.Receipt, error) {
	args := m.Called(ctx, creditID)
	return args.Get(0).(domain.Receipt), args.Error(1)
}

func (m *MockReceiptRemote) ListReceipts(ctx context.Context, q domain.ListQuery) ([]domain.Receipt, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRemote) DownloadReceipt(ctx context.Context, receiptID string) ([]byte, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendReceipt(ctx context.Context, to, donorName string, rcpt domain.Receipt, pdf io.Reader) error {
	args := m.Called(ctx, to, donorName, rcpt, pdf)
	return args.Error(0)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, r)
	return args.String(0), args.Error(1)
}

func (m *MockArchive) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockArchive) Exists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

// fixedLedger hands out the same store, or an error when store is nil.
type fixedLedger struct {
	store *ledger.Store
}

func (f fixedLedger) Ledger() (*ledger.Store, error) {
	if f.store == nil {
		return nil, service.ErrNotAuthenticated
	}
	return f.store, nil
}

var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

// seededStore returns an activated store whose remote creates never finish,
// so optimistic records stay put for the duration of a test.
func seededStore(t *testing.T, credits []domain.Credit, expenses []domain.Expense, items []domain.Item) (*ledger.Store, *MockLedgerRemote) {
	t.Helper()
	r := new(MockLedgerRemote)
	stubFetches(r, credits, expenses, items)
	wait := func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}
	r.On("CreateCredit", mock.Anything, mock.Anything).Run(wait).Return(domain.Credit{}, context.Canceled).Maybe()
	r.On("CreateExpense", mock.Anything, mock.Anything).Run(wait).Return(domain.Expense{}, context.Canceled).Maybe()
	r.On("CreateItem", mock.Anything, mock.Anything).Run(wait).Return(domain.Item{}, context.Canceled).Maybe()

	s := ledger.New(r, ledger.WithClock(func() time.Time { return testNow }), ledger.WithSettleDelay(0))
	t.Cleanup(func() { s.Close() })
	s.Activate(context.Background())
	return s, r
}

func stubFetches(r *MockLedgerRemote, credits []domain.Credit, expenses []domain.Expense, items []domain.Item) {
	if credits == nil {
		credits = []domain.Credit{}
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	if items == nil {
		items = []domain.Item{}
	}
	r.On("DashboardMetrics", mock.Anything).Return(domain.RemoteMetrics{}, nil).Maybe()
	r.On("ListCredits", mock.Anything, mock.Anything).Return(credits, nil).Maybe()
	r.On("ListExpenses", mock.Anything, mock.Anything).Return(expenses, nil).Maybe()
	r.On("ListItems", mock.Anything, mock.Anything).Return(items, nil).Maybe()
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}
