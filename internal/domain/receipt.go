package domain

import "github.com/shopspring/decimal"

// Receipt is a generated donation receipt. ArchivePath is set once the PDF
// has been downloaded into the local archive.
type Receipt struct {
	ID           string          `json:"id"`
	CreditID     string          `json:"creditId,omitempty"`
	SerialNumber string          `json:"serialNumber"`
	DonorName    string          `json:"donorName"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	PDFPath      string          `json:"pdfPath,omitempty"`
	EmailedTo    string          `json:"emailedTo,omitempty"`
	CreatedAt    string          `json:"createdAt"`
	ArchivePath  string          `json:"archivePath,omitempty"`
}
