package domain

type DistributionStatus string

const (
	DistributionStatusDistributed DistributionStatus = "distributed"
	DistributionStatusReturned    DistributionStatus = "returned"
	DistributionStatusOverdue     DistributionStatus = "overdue"
)

// Distribution is a checkout of some quantity of an item to a recipient.
type Distribution struct {
	ID                 string             `json:"id"`
	ItemID             string             `json:"itemId"`
	ItemName           string             `json:"itemName"`
	Quantity           int                `json:"quantity"`
	RecipientName      string             `json:"recipientName"`
	RecipientContact   string             `json:"recipientContact"`
	DistributedDate    string             `json:"distributedDate"`
	ExpectedReturnDate string             `json:"expectedReturnDate,omitempty"`
	Status             DistributionStatus `json:"status"`
	ReturnedDate       string             `json:"returnedDate,omitempty"`
	ConditionOnReturn  string             `json:"conditionOnReturn,omitempty"`
}

// Outstanding reports whether the distributed quantity is still out of stock.
func (d Distribution) Outstanding() bool {
	return d.Status == DistributionStatusDistributed || d.Status == DistributionStatusOverdue
}

type DistributionDraft struct {
	ItemID             string `json:"itemId"`
	ItemName           string `json:"itemName,omitempty"`
	Quantity           int    `json:"quantity"`
	RecipientName      string `json:"recipientName"`
	RecipientContact   string `json:"recipientContact"`
	DistributedDate    string `json:"distributedDate,omitempty"`
	ExpectedReturnDate string `json:"expectedReturnDate,omitempty"`
}
