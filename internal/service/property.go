package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/ledger"
)

// DefaultReturnCondition is recorded when a return does not describe the
// item's condition.
const DefaultReturnCondition = "Good condition"

type propertyService struct {
	ledgers LedgerProvider
}

func NewPropertyService(ledgers LedgerProvider) PropertyService {
	return &propertyService{ledgers: ledgers}
}

func (s *propertyService) AddItem(ctx context.Context, draft domain.ItemDraft) (domain.Item, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Category = strings.TrimSpace(draft.Category)
	draft.Location = strings.TrimSpace(draft.Location)
	if draft.Condition == "" {
		draft.Condition = domain.ItemConditionGood
	}

	switch {
	case draft.Name == "":
		return domain.Item{}, invalid("name", "is required")
	case draft.Category == "":
		return domain.Item{}, invalid("category", "is required")
	case draft.TotalQuantity <= 0:
		return domain.Item{}, invalid("totalQuantity", "must be greater than zero")
	case !draft.Condition.Valid():
		return domain.Item{}, invalid("condition", fmt.Sprintf("unknown condition %q", draft.Condition))
	}

	store, err := s.ledgers.Ledger()
	if err != nil {
		return domain.Item{}, err
	}
	item, _, err := store.AddItem(ctx, draft)
	if err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (s *propertyService) ListItems(_ context.Context) ([]domain.Item, error) {
	store, err := s.ledgers.Ledger()
	if err != nil {
		return nil, err
	}
	return store.Items(), nil
}

// Distribute checks out stock to a recipient. The quantity is checked against
// the item here for a readable error and again inside the store.
func (s *propertyService) Distribute(ctx context.Context, draft domain.DistributionDraft) (domain.Distribution, error) {
	draft.ItemID = strings.TrimSpace(draft.ItemID)
	draft.RecipientName = strings.TrimSpace(draft.RecipientName)
	draft.RecipientContact = strings.TrimSpace(draft.RecipientContact)

	switch {
	case draft.ItemID == "":
		return domain.Distribution{}, invalid("itemId", "is required")
	case draft.Quantity <= 0:
		return domain.Distribution{}, invalid("quantity", "must be greater than zero")
	case draft.RecipientName == "":
		return domain.Distribution{}, invalid("recipientName", "is required")
	case draft.RecipientContact == "":
		return domain.Distribution{}, invalid("recipientContact", "is required")
	}
	var err error
	if draft.DistributedDate, err = optionalDate("distributedDate", draft.DistributedDate); err != nil {
		return domain.Distribution{}, err
	}
	if draft.ExpectedReturnDate, err = optionalDate("expectedReturnDate", draft.ExpectedReturnDate); err != nil {
		return domain.Distribution{}, err
	}

	store, err := s.ledgers.Ledger()
	if err != nil {
		return domain.Distribution{}, err
	}
	item, ok := store.Item(draft.ItemID)
	if !ok {
		return domain.Distribution{}, ledger.ErrItemNotFound
	}
	if draft.Quantity > item.AvailableQuantity {
		return domain.Distribution{}, fmt.Errorf("%w: only %d of %s available",
			ledger.ErrInsufficientQuantity, item.AvailableQuantity, item.Name)
	}
	return store.DistributeItem(ctx, draft)
}

func (s *propertyService) Return(ctx context.Context, distributionID, condition string) (domain.Distribution, error) {
	distributionID = strings.TrimSpace(distributionID)
	if distributionID == "" {
		return domain.Distribution{}, invalid("distributionId", "is required")
	}
	condition = strings.TrimSpace(condition)
	if condition == "" {
		condition = DefaultReturnCondition
	}

	store, err := s.ledgers.Ledger()
	if err != nil {
		return domain.Distribution{}, err
	}
	return store.ReturnItem(ctx, distributionID, condition)
}

func (s *propertyService) ListDistributions(_ context.Context) ([]domain.Distribution, error) {
	store, err := s.ledgers.Ledger()
	if err != nil {
		return nil, err
	}
	return store.Distributions(), nil
}

// optionalDate normalises a non-blank date to YYYY-MM-DD. Blank stays blank.
func optionalDate(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	t, ok := domain.ParseDate(raw)
	if !ok {
		return "", invalid(field, fmt.Sprintf("unrecognised date %q", raw))
	}
	return domain.DateString(t), nil
}
