package remote

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/receipt"
)

// recordID accepts both numeric and string identifiers.
type recordID string

func (id *recordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = recordID(n.String())
	return nil
}

type userRecord struct {
	ID        recordID `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	LastLogin *string  `json:"last_login"`
}

type creditRecord struct {
	ID            recordID `json:"id"`
	SerialNumber  *string  `json:"serial_number"`
	ReceiptSerial *string  `json:"receipt_serial"`
	DonorName     string   `json:"donor_name"`
	Amount        float64  `json:"amount"`
	Date          string   `json:"date"`
	Purpose       string   `json:"purpose"`
	PaymentMethod *string  `json:"payment_method"`
	ContactInfo   *string  `json:"contact_info"`
	CreatedAt     string   `json:"created_at"`
}

type expenseRecord struct {
	ID              recordID `json:"id"`
	Amount          float64  `json:"amount"`
	Date            string   `json:"date"`
	Purpose         string   `json:"purpose"`
	Category        *string  `json:"category"`
	BeneficiaryName *string  `json:"beneficiary_name"`
	CreatedAt       string   `json:"created_at"`
}

type itemRecord struct {
	ID                  recordID `json:"id"`
	Name                string   `json:"name"`
	Category            *string  `json:"category"`
	TotalQuantity       int      `json:"total_quantity"`
	AvailableQuantity   int      `json:"available_quantity"`
	DistributedQuantity *int     `json:"distributed_quantity"`
	Condition           *string  `json:"condition"`
	Location            *string  `json:"location"`
	Description         *string  `json:"description"`
	CreatedAt           string   `json:"created_at"`
}

type receiptRecord struct {
	ID           recordID `json:"id"`
	CreditID     recordID `json:"credit_id"`
	SerialNumber string   `json:"serial_number"`
	DonorName    string   `json:"donor_name"`
	Amount       float64  `json:"amount"`
	Date         string   `json:"date"`
	PDFPath      *string  `json:"pdf_path"`
	EmailedTo    *string  `json:"emailed_to"`
	CreatedAt    string   `json:"created_at"`
}

type metricsRecord struct {
	Financial struct {
		TotalCollected   float64 `json:"total_collected"`
		TotalSpent       float64 `json:"total_spent"`
		AvailableBalance float64 `json:"available_balance"`
	} `json:"financial"`
	Inventory struct {
		TotalItems          int `json:"total_items"`
		AvailableItems      int `json:"available_items"`
		DistributedItems    int `json:"distributed_items"`
		ActiveDistributions int `json:"active_distributions"`
	} `json:"inventory"`
}

type balanceRecord struct {
	TotalCollected   float64 `json:"total_collected"`
	TotalSpent       float64 `json:"total_spent"`
	AvailableBalance float64 `json:"available_balance"`
}

type creditRequest struct {
	DonorName     string  `json:"donor_name"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Purpose       string  `json:"purpose"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	ContactInfo   string  `json:"contact_info,omitempty"`
}

type expenseRequest struct {
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Purpose         string  `json:"purpose"`
	Category        string  `json:"category,omitempty"`
	BeneficiaryName string  `json:"beneficiary_name,omitempty"`
}

type itemRequest struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	TotalQuantity     int    `json:"total_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	Condition         string `json:"condition,omitempty"`
	Location          string `json:"location,omitempty"`
	Description       string `json:"description,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:        string(r.ID),
		Username:  r.Username,
		Email:     r.Email,
		LastLogin: deref(r.LastLogin),
	}
}

func (r creditRecord) toDomain(now time.Time) domain.Credit {
	serial := deref(r.SerialNumber)
	if serial == "" {
		serial = deref(r.ReceiptSerial)
	}
	if serial == "" {
		serial = receipt.Fallback(string(r.ID), now)
	}
	return domain.Credit{
		ID:            string(r.ID),
		SerialNumber:  serial,
		DonorName:     r.DonorName,
		Amount:        decimal.NewFromFloat(r.Amount),
		Date:          r.Date,
		Purpose:       r.Purpose,
		PaymentMethod: domain.PaymentMethod(deref(r.PaymentMethod)),
		ContactInfo:   deref(r.ContactInfo),
		CreatedAt:     r.CreatedAt,
	}
}

func (r expenseRecord) toDomain() domain.Expense {
	return domain.Expense{
		ID:              string(r.ID),
		Amount:          decimal.NewFromFloat(r.Amount),
		Date:            r.Date,
		Purpose:         r.Purpose,
		Category:        domain.ExpenseCategory(deref(r.Category)),
		BeneficiaryName: deref(r.BeneficiaryName),
		CreatedAt:       r.CreatedAt,
	}
}

func (r itemRecord) toDomain() domain.Item {
	distributed := r.TotalQuantity - r.AvailableQuantity
	if r.DistributedQuantity != nil {
		distributed = *r.DistributedQuantity
	}
	return domain.Item{
		ID:                  string(r.ID),
		Name:                r.Name,
		Category:            deref(r.Category),
		TotalQuantity:       r.TotalQuantity,
		AvailableQuantity:   r.AvailableQuantity,
		DistributedQuantity: distributed,
		Condition:           domain.ItemCondition(deref(r.Condition)),
		Location:            deref(r.Location),
		Description:         deref(r.Description),
		CreatedAt:           r.CreatedAt,
	}
}

func (r receiptRecord) toDomain() domain.Receipt {
	return domain.Receipt{
		ID:           string(r.ID),
		CreditID:     string(r.CreditID),
		SerialNumber: r.SerialNumber,
		DonorName:    r.DonorName,
		Amount:       decimal.NewFromFloat(r.Amount),
		Date:         r.Date,
		PDFPath:      deref(r.PDFPath),
		EmailedTo:    deref(r.EmailedTo),
		CreatedAt:    r.CreatedAt,
	}
}

func (r metricsRecord) toDomain() domain.RemoteMetrics {
	return domain.RemoteMetrics{
		DashboardMetrics: domain.DashboardMetrics{
			TotalCollected:   decimal.NewFromFloat(r.Financial.TotalCollected),
			TotalSpent:       decimal.NewFromFloat(r.Financial.TotalSpent),
			AvailableBalance: decimal.NewFromFloat(r.Financial.AvailableBalance),
			TotalItems:       r.Inventory.TotalItems,
			DistributedItems: r.Inventory.DistributedItems,
			AvailableItems:   r.Inventory.AvailableItems,
		},
		ActiveDistributions: r.Inventory.ActiveDistributions,
	}
}

func (r balanceRecord) toDomain() domain.Balance {
	return domain.Balance{
		TotalCollected:   decimal.NewFromFloat(r.TotalCollected),
		TotalSpent:       decimal.NewFromFloat(r.TotalSpent),
		AvailableBalance: decimal.NewFromFloat(r.AvailableBalance),
	}
}

func newCreditRequest(d domain.CreditDraft) creditRequest {
	return creditRequest{
		DonorName:     d.DonorName,
		Amount:        d.Amount.InexactFloat64(),
		Date:          d.Date,
		Purpose:       d.Purpose,
		PaymentMethod: string(d.PaymentMethod),
		ContactInfo:   d.ContactInfo,
	}
}

func newExpenseRequest(d domain.ExpenseDraft) expenseRequest {
	return expenseRequest{
		Amount:          d.Amount.InexactFloat64(),
		Date:            d.Date,
		Purpose:         d.Purpose,
		Category:        string(d.Category),
		BeneficiaryName: d.BeneficiaryName,
	}
}

func newItemRequest(d domain.ItemDraft) itemRequest {
	return itemRequest{
		Name:              d.Name,
		Category:          d.Category,
		TotalQuantity:     d.TotalQuantity,
		AvailableQuantity: d.TotalQuantity,
		Condition:         string(d.Condition),
		Location:          d.Location,
		Description:       d.Description,
	}
}
