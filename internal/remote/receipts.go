package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Munazil1/centswise/internal/domain"
)

func (c *Client) GenerateReceipt(ctx context.Context, creditID string) (domain.Receipt, error) {
	var out struct {
		Receipt receiptRecord `json:"receipt"`
	}
	path := "/receipts/generate/" + url.PathEscape(creditID)
	if err := c.do(ctx, "GenerateReceipt", http.MethodPost, path, nil, nil, &out); err != nil {
		return domain.Receipt{}, err
	}
	r := out.Receipt.toDomain()
	if r.CreditID == "" {
		r.CreditID = creditID
	}
	return r, nil
}

func (c *Client) ListReceipts(ctx context.Context, q domain.ListQuery) ([]domain.Receipt, error) {
	var out struct {
		Receipts []receiptRecord `json:"receipts"`
	}
	if err := c.do(ctx, "ListReceipts", http.MethodGet, "/receipts", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	receipts := make([]domain.Receipt, 0, len(out.Receipts))
	for _, r := range out.Receipts {
		receipts = append(receipts, r.toDomain())
	}
	return receipts, nil
}

// DownloadReceipt returns the PDF bytes of a generated receipt.
func (c *Client) DownloadReceipt(ctx context.Context, receiptID string) ([]byte, error) {
	return c.send(ctx, "DownloadReceipt", http.MethodGet, "/receipts/download/"+url.PathEscape(receiptID), nil, nil)
}
