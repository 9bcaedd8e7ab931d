package domain

import "github.com/shopspring/decimal"

type ExpenseCategory string

const (
	ExpenseCategoryMedical     ExpenseCategory = "medical"
	ExpenseCategoryEducational ExpenseCategory = "educational"
	ExpenseCategoryEmergency   ExpenseCategory = "emergency"
	ExpenseCategoryEvents      ExpenseCategory = "events"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryMedical, ExpenseCategoryEducational, ExpenseCategoryEmergency,
		ExpenseCategoryEvents, ExpenseCategoryOther:
		return true
	}
	return false
}

type Expense struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
	Purpose         string          `json:"purpose"`
	Category        ExpenseCategory `json:"category"`
	BeneficiaryName string          `json:"beneficiaryName,omitempty"`
	CreatedAt       string          `json:"createdAt"`
}

type ExpenseDraft struct {
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
	Purpose         string          `json:"purpose"`
	Category        ExpenseCategory `json:"category"`
	BeneficiaryName string          `json:"beneficiaryName,omitempty"`
}
