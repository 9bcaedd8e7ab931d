package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Munazil1/centswise/internal/domain"
)

type moneyService struct {
	ledgers LedgerProvider
	now     func() time.Time
}

func NewMoneyService(ledgers LedgerProvider) MoneyService {
	return &moneyService{ledgers: ledgers, now: time.Now}
}

// RecordCredit validates a donation and records it. The returned credit is
// the optimistic local record, carrying its receipt serial.
func (s *moneyService) RecordCredit(ctx context.Context, draft domain.CreditDraft) (domain.Credit, error) {
	draft.DonorName = strings.TrimSpace(draft.DonorName)
	draft.Purpose = strings.TrimSpace(draft.Purpose)
	draft.ContactInfo = strings.TrimSpace(draft.ContactInfo)
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = domain.PaymentMethodCash
	}

	switch {
	case draft.DonorName == "":
		return domain.Credit{}, invalid("donorName", "is required")
	case !draft.Amount.IsPositive():
		return domain.Credit{}, invalid("amount", "must be greater than zero")
	case draft.Purpose == "":
		return domain.Credit{}, invalid("purpose", "is required")
	case !draft.PaymentMethod.Valid():
		return domain.Credit{}, invalid("paymentMethod", fmt.Sprintf("unknown payment method %q", draft.PaymentMethod))
	}
	date, err := s.date(draft.Date)
	if err != nil {
		return domain.Credit{}, err
	}
	draft.Date = date

	store, err := s.ledgers.Ledger()
	if err != nil {
		return domain.Credit{}, err
	}
	credit, _, err := store.AddCredit(ctx, draft)
	if err != nil {
		return domain.Credit{}, err
	}
	return credit, nil
}

// RecordExpense validates an expenditure against the available balance and
// records it.
func (s *moneyService) RecordExpense(ctx context.Context, draft domain.ExpenseDraft) (domain.Expense, error) {
	draft.Purpose = strings.TrimSpace(draft.Purpose)
	draft.BeneficiaryName = strings.TrimSpace(draft.BeneficiaryName)
	if draft.Category == "" {
		draft.Category = domain.ExpenseCategoryOther
	}

	switch {
	case !draft.Amount.IsPositive():
		return domain.Expense{}, invalid("amount", "must be greater than zero")
	case draft.Purpose == "":
		return domain.Expense{}, invalid("purpose", "is required")
	case !draft.Category.Valid():
		return domain.Expense{}, invalid("category", fmt.Sprintf("unknown category %q", draft.Category))
	}
	date, err := s.date(draft.Date)
	if err != nil {
		return domain.Expense{}, err
	}
	draft.Date = date

	store, err := s.ledgers.Ledger()
	if err != nil {
		return domain.Expense{}, err
	}
	if balance := store.AvailableBalance(); draft.Amount.GreaterThan(balance) {
		return domain.Expense{}, fmt.Errorf("%w: requested %s, available %s",
			ErrInsufficientBalance, draft.Amount.StringFixed(2), balance.StringFixed(2))
	}
	expense, _, err := store.AddExpense(ctx, draft)
	if err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

func (s *moneyService) ListCredits(_ context.Context) ([]domain.Credit, error) {
	store, err := s.ledgers.Ledger()
	if err != nil {
		return nil, err
	}
	return store.Credits(), nil
}

func (s *moneyService) ListExpenses(_ context.Context) ([]domain.Expense, error) {
	store, err := s.ledgers.Ledger()
	if err != nil {
		return nil, err
	}
	return store.Expenses(), nil
}

func (s *moneyService) NextReceiptNumber(_ context.Context) (string, error) {
	store, err := s.ledgers.Ledger()
	if err != nil {
		return "", err
	}
	return store.NextReceiptNumber(), nil
}

func (s *moneyService) Dashboard(_ context.Context) (*Dashboard, error) {
	store, err := s.ledgers.Ledger()
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Metrics:            store.Metrics(),
		RemoteMetrics:      store.RemoteMetrics(),
		RecentTransactions: store.RecentTransactions(),
		NextReceiptNumber:  store.NextReceiptNumber(),
	}, nil
}

func (s *moneyService) Refresh(ctx context.Context) error {
	store, err := s.ledgers.Ledger()
	if err != nil {
		return err
	}
	store.Refresh(ctx)
	return nil
}

// date defaults a blank date to today and normalises the rest to YYYY-MM-DD.
func (s *moneyService) date(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DateString(s.now()), nil
	}
	t, ok := domain.ParseDate(raw)
	if !ok {
		return "", invalid("date", fmt.Sprintf("unrecognised date %q", raw))
	}
	return domain.DateString(t), nil
}
