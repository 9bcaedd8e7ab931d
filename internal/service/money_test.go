package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/service"
)

func TestMoneyService_RecordCredit_Validation(t *testing.T) {
	store, _ := seededStore(t, nil, nil, nil)
	svc := service.NewMoneyService(fixedLedger{store: store})

	valid := domain.CreditDraft{
		DonorName:     "Asha",
		Amount:        decimal.NewFromInt(500),
		Date:          "2026-01-01",
		Purpose:       "School fees",
		PaymentMethod: domain.PaymentMethodCash,
	}

	tests := []struct {
		name   string
		mutate func(d *domain.CreditDraft)
		field  string
	}{
		{"blank donor", func(d *domain.CreditDraft) { d.DonorName = "   " }, "donorName"},
		{"zero amount", func(d *domain.CreditDraft) { d.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(d *domain.CreditDraft) { d.Amount = decimal.NewFromInt(-5) }, "amount"},
		{"blank purpose", func(d *domain.CreditDraft) { d.Purpose = "" }, "purpose"},
		{"unknown method", func(d *domain.CreditDraft) { d.PaymentMethod = "cheque" }, "paymentMethod"},
		{"bad date", func(d *domain.CreditDraft) { d.Date = "01/02/2026" }, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			_, err := svc.RecordCredit(context.Background(), d)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Empty(t, store.Credits())
}

func TestMoneyService_RecordCredit(t *testing.T) {
	store, _ := seededStore(t, nil, nil, nil)
	svc := service.NewMoneyService(fixedLedger{store: store})

	credit, err := svc.RecordCredit(context.Background(), domain.CreditDraft{
		DonorName: "  Asha ",
		Amount:    decimal.NewFromInt(500),
		Date:      "2026-01-01",
		Purpose:   "School fees",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", credit.DonorName)
	assert.Equal(t, domain.PaymentMethodCash, credit.PaymentMethod)
	assert.Equal(t, "RCP-2026-0001", credit.SerialNumber)

	next, err := svc.NextReceiptNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RCP-2026-0002", next)

	credits, err := svc.ListCredits(context.Background())
	require.NoError(t, err)
	assert.Len(t, credits, 1)
}

func TestMoneyService_RecordExpense_InsufficientBalance(t *testing.T) {
	credits := []domain.Credit{{ID: "1", DonorName: "A", Amount: decimal.NewFromInt(100), Date: "2026-01-01", SerialNumber: "RCP-2026-0001"}}
	store, _ := seededStore(t, credits, nil, nil)
	svc := service.NewMoneyService(fixedLedger{store: store})

	_, err := svc.RecordExpense(context.Background(), domain.ExpenseDraft{
		Amount:   decimal.NewFromInt(150),
		Purpose:  "Medicine",
		Category: domain.ExpenseCategoryMedical,
	})
	assert.ErrorIs(t, err, service.ErrInsufficientBalance)
	assert.Empty(t, store.Expenses())

	exp, err := svc.RecordExpense(context.Background(), domain.ExpenseDraft{
		Amount:  decimal.NewFromInt(100),
		Purpose: "Medicine",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ExpenseCategoryOther, exp.Category)
	assert.NotEmpty(t, exp.Date)
	assert.True(t, store.AvailableBalance().IsZero())
}

func TestMoneyService_RecordExpense_Validation(t *testing.T) {
	store, _ := seededStore(t, nil, nil, nil)
	svc := service.NewMoneyService(fixedLedger{store: store})

	_, err := svc.RecordExpense(context.Background(), domain.ExpenseDraft{
		Amount:   decimal.NewFromInt(10),
		Purpose:  "x",
		Category: "travel",
	})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestMoneyService_NotAuthenticated(t *testing.T) {
	svc := service.NewMoneyService(fixedLedger{})

	_, err := svc.RecordCredit(context.Background(), domain.CreditDraft{
		DonorName: "A", Amount: decimal.NewFromInt(1), Purpose: "p",
	})
	assert.True(t, errors.Is(err, service.ErrNotAuthenticated))

	_, err = svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, service.ErrNotAuthenticated)
	assert.ErrorIs(t, svc.Refresh(context.Background()), service.ErrNotAuthenticated)
}

func TestMoneyService_Dashboard(t *testing.T) {
	credits := []domain.Credit{{ID: "1", DonorName: "A", Amount: decimal.NewFromInt(300), Date: "2026-02-01", SerialNumber: "RCP-2026-0001"}}
	expenses := []domain.Expense{{ID: "2", Amount: decimal.NewFromInt(120), Date: "2026-02-03", Purpose: "Books"}}
	store, _ := seededStore(t, credits, expenses, nil)
	svc := service.NewMoneyService(fixedLedger{store: store})

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, d.Metrics.AvailableBalance.Equal(decimal.NewFromInt(180)))
	require.Len(t, d.RecentTransactions, 2)
	assert.Equal(t, domain.TransactionTypeExpense, d.RecentTransactions[0].Type)
	assert.Equal(t, "RCP-2026-0002", d.NextReceiptNumber)
}
