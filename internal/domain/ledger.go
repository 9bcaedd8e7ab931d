package domain

import "github.com/shopspring/decimal"

type TransactionType string

const (
	TransactionTypeCredit  TransactionType = "credit"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is the merged read view over credits and expenses.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Name        string          `json:"name"`
}
