package service

import (
	"context"
	"io"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/ledger"
)

// LedgerProvider hands out the store of the current session.
type LedgerProvider interface {
	Ledger() (*ledger.Store, error)
}

type AuthService interface {
	LedgerProvider
	Login(ctx context.Context, username, password string) (domain.User, error)
	Logout(ctx context.Context) error
	Resume(ctx context.Context) (bool, error)
	CurrentUser(ctx context.Context) (domain.User, error)
	ChangePassword(ctx context.Context, current, next string) (string, error)
	Authenticated() bool
	Close() error
}

type MoneyService interface {
	RecordCredit(ctx context.Context, draft domain.CreditDraft) (domain.Credit, error)
	RecordExpense(ctx context.Context, draft domain.ExpenseDraft) (domain.Expense, error)
	ListCredits(ctx context.Context) ([]domain.Credit, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	NextReceiptNumber(ctx context.Context) (string, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	Refresh(ctx context.Context) error
}

type PropertyService interface {
	AddItem(ctx context.Context, draft domain.ItemDraft) (domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	Distribute(ctx context.Context, draft domain.DistributionDraft) (domain.Distribution, error)
	Return(ctx context.Context, distributionID, condition string) (domain.Distribution, error)
	ListDistributions(ctx context.Context) ([]domain.Distribution, error)
}

type ReceiptService interface {
	Issue(ctx context.Context, creditID string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, q domain.ListQuery) ([]domain.Receipt, error)
	OpenArchived(ctx context.Context, serial string) (io.ReadCloser, int64, error)
}

// Mailer delivers receipts to donors.
type Mailer interface {
	SendReceipt(ctx context.Context, to, donorName string, rcpt domain.Receipt, pdf io.Reader) error
}

// Dashboard is the overview shown on the landing page.
type Dashboard struct {
	Metrics            domain.DashboardMetrics `json:"metrics"`
	RemoteMetrics      domain.RemoteMetrics    `json:"remoteMetrics"`
	RecentTransactions []domain.Transaction    `json:"recentTransactions"`
	NextReceiptNumber  string                  `json:"nextReceiptNumber"`
}
