package domain

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOnline       PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodOnline:
		return true
	}
	return false
}

// Credit is a recorded donation. ID is a local temporary identifier until the
// remote service confirms the record.
type Credit struct {
	ID            string          `json:"id"`
	SerialNumber  string          `json:"serialNumber"`
	DonorName     string          `json:"donorName"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Purpose       string          `json:"purpose"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	ContactInfo   string          `json:"contactInfo,omitempty"`
	CreatedAt     string          `json:"createdAt"`
}

// CreditDraft carries the caller-supplied fields of a new credit.
type CreditDraft struct {
	DonorName     string          `json:"donorName"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Purpose       string          `json:"purpose"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	ContactInfo   string          `json:"contactInfo,omitempty"`
}
