package http_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/ledger"
	"github.com/Munazil1/centswise/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Ledger() (*ledger.Store, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Store), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAuthService) Resume(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context) (domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, current, next string) (string, error) {
	args := m.Called(ctx, current, next)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Authenticated() bool {
	return m.Called().Bool(0)
}

func (m *MockAuthService) Close() error {
	return m.Called().Error(0)
}

type MockMoneyService struct {
	mock.Mock
}

func (m *MockMoneyService) RecordCredit(ctx context.Context, draft domain.CreditDraft) (domain.Credit, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.Credit), args.Error(1)
}

func (m *MockMoneyService) RecordExpense(ctx context.Context, draft domain.ExpenseDraft) (domain.Expense, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.Expense), args.Error(1)
}

func (m *MockMoneyService) ListCredits(ctx context.Context) ([]domain.Credit, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockMoneyService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockMoneyService) NextReceiptNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockMoneyService) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

func (m *MockMoneyService) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) AddItem(ctx context.Context, draft domain.ItemDraft) (domain.Item, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockPropertyService) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockPropertyService) Distribute(ctx context.Context, draft domain.DistributionDraft) (domain.Distribution, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.Distribution), args.Error(1)
}

func (m *MockPropertyService) Return(ctx context.Context, distributionID, condition string) (domain.Distribution, error) {
	args := m.Called(ctx, distributionID, condition)
	return args.Get(0).(domain.Distribution), args.Error(1)
}

func (m *MockPropertyService) ListDistributions(ctx context.Context) ([]domain.Distribution, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Distribution), args.Error(1)
}

type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) Issue(ctx context.Context, creditID string) (*domain.Receipt, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) ListReceipts(ctx context.Context, q domain.ListQuery) ([]domain.Receipt, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) OpenArchived(ctx context.Context, serial string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}

type MockHealth struct {
	mock.Mock
}

func (m *MockHealth) Health(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
