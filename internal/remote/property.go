package remote

import (
	"context"
	"net/http"

	"github.com/Munazil1/centswise/internal/domain"
)

func (c *Client) ListItems(ctx context.Context, q domain.ListQuery) ([]domain.Item, error) {
	var out struct {
		Items []itemRecord `json:"items"`
	}
	if err := c.do(ctx, "ListItems", http.MethodGet, "/property/items", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(out.Items))
	for _, r := range out.Items {
		items = append(items, r.toDomain())
	}
	return items, nil
}

// CreateItem registers a new item with its whole quantity available.
func (c *Client) CreateItem(ctx context.Context, d domain.ItemDraft) (domain.Item, error) {
	var out struct {
		Item itemRecord `json:"item"`
	}
	if err := c.do(ctx, "CreateItem", http.MethodPost, "/property/items", nil, newItemRequest(d), &out); err != nil {
		return domain.Item{}, err
	}
	return out.Item.toDomain(), nil
}
