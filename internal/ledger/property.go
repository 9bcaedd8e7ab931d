package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Munazil1/centswise/internal/domain"
)

// AddItem registers an item optimistically with its whole quantity available.
func (s *Store) AddItem(ctx context.Context, draft domain.ItemDraft) (domain.Item, *Pending[domain.Item], error) {
	if draft.TotalQuantity < 0 {
		return domain.Item{}, nil, ErrInvalidQuantity
	}
	local := domain.Item{
		ID:                  s.tempID(),
		Name:                draft.Name,
		Category:            draft.Category,
		TotalQuantity:       draft.TotalQuantity,
		AvailableQuantity:   draft.TotalQuantity,
		DistributedQuantity: 0,
		Condition:           draft.Condition,
		Location:            draft.Location,
		Description:         draft.Description,
		CreatedAt:           s.today(),
	}
	pending := newPending[domain.Item]()

	err := s.launch(local.ID, func(next *Snapshot) error {
		next.Items = prepend(local, next.Items)
		return nil
	}, func(bg context.Context) {
		confirmed, err := s.completeItem(bg, local, draft)
		pending.resolve(confirmed, err)
		s.settleThenReconcile(bg, propertyCollections)
	})
	if err != nil {
		return domain.Item{}, nil, err
	}
	s.log.InfoContext(ctx, "Item recorded locally", "temp_id", local.ID, "name", local.Name)
	return local, pending, nil
}

func (s *Store) completeItem(ctx context.Context, local domain.Item, draft domain.ItemDraft) (domain.Item, error) {
	defer s.confirm(local.ID)
	created, err := s.remote.CreateItem(ctx, draft)
	if err != nil {
		s.log.Error("Failed to add item", append(logAttrsFor("AddItem", local.ID), "error", err)...)
		s.patch(func(next *Snapshot) {
			next.Items = slices.DeleteFunc(next.Items, func(it domain.Item) bool { return it.ID == local.ID })
		})
		return domain.Item{}, wrapRemote("add item", err)
	}
	confirmed := local
	confirmed.ID = created.ID

	s.jmu.Lock()
	defer s.jmu.Unlock()
	var moved []domain.Distribution
	s.patch(func(next *Snapshot) {
		if i := next.itemIndex(local.ID); i >= 0 {
			next.Items[i].ID = created.ID
		}
		// distributions made against the temporary id follow the item
		for i := range next.Distributions {
			if next.Distributions[i].ItemID == local.ID {
				next.Distributions[i].ItemID = created.ID
				moved = append(moved, next.Distributions[i])
			}
		}
	})
	for _, d := range moved {
		if err := s.journalSave(ctx, d); err != nil {
			s.log.Error("Failed to journal re-pointed distribution", "distribution_id", d.ID, "item_id", d.ItemID, "error", err)
		}
	}
	return confirmed, nil
}

// DistributeItem checks out quantity units of an item to a recipient. It is
// tracked locally only. No state changes when an error is returned.
func (s *Store) DistributeItem(ctx context.Context, draft domain.DistributionDraft) (domain.Distribution, error) {
	s.jmu.Lock()
	defer s.jmu.Unlock()
	if s.isClosed() {
		return domain.Distribution{}, ErrClosed
	}

	_, item, err := checkDistribution(s.Snapshot(), draft)
	if err != nil {
		return domain.Distribution{}, err
	}
	dist := domain.Distribution{
		ID:                 uuid.NewString(),
		ItemID:             item.ID,
		ItemName:           draft.ItemName,
		Quantity:           draft.Quantity,
		RecipientName:      draft.RecipientName,
		RecipientContact:   draft.RecipientContact,
		DistributedDate:    draft.DistributedDate,
		ExpectedReturnDate: draft.ExpectedReturnDate,
		Status:             domain.DistributionStatusDistributed,
	}
	if dist.ItemName == "" {
		dist.ItemName = item.Name
	}
	if dist.DistributedDate == "" {
		dist.DistributedDate = s.today()
	}
	if err := s.journalSave(ctx, dist); err != nil {
		return domain.Distribution{}, err
	}

	// a reconciliation may have replaced the item since the check above
	err = s.update(func(next *Snapshot) error {
		i, item, err := checkDistribution(next, draft)
		if err != nil {
			return err
		}
		item.AvailableQuantity -= draft.Quantity
		item.DistributedQuantity += draft.Quantity
		next.Items[i] = item
		next.Distributions = prepend(dist, next.Distributions)
		return nil
	})
	if err != nil {
		s.journalDelete(ctx, dist.ID)
		return domain.Distribution{}, err
	}
	s.log.InfoContext(ctx, "Item distributed", "distribution_id", dist.ID, "item_id", dist.ItemID, "quantity", dist.Quantity)
	return dist, nil
}

func checkDistribution(snap *Snapshot, draft domain.DistributionDraft) (int, domain.Item, error) {
	i := snap.itemIndex(draft.ItemID)
	if i < 0 {
		return -1, domain.Item{}, ErrItemNotFound
	}
	if draft.Quantity <= 0 {
		return -1, domain.Item{}, ErrInvalidQuantity
	}
	item := snap.Items[i]
	if draft.Quantity > item.AvailableQuantity {
		return -1, domain.Item{}, fmt.Errorf("%w: requested %d, %d available", ErrInsufficientQuantity, draft.Quantity, item.AvailableQuantity)
	}
	return i, item, nil
}

// ReturnItem closes a distribution and puts its quantity back into stock.
// Overdue distributions can be returned too.
func (s *Store) ReturnItem(ctx context.Context, distributionID, conditionOnReturn string) (domain.Distribution, error) {
	s.jmu.Lock()
	defer s.jmu.Unlock()
	if s.isClosed() {
		return domain.Distribution{}, ErrClosed
	}

	cur := s.Snapshot()
	di := cur.distributionIndex(distributionID)
	if di < 0 {
		return domain.Distribution{}, ErrDistributionNotFound
	}
	prev := cur.Distributions[di]
	if prev.Status == domain.DistributionStatusReturned {
		return domain.Distribution{}, ErrAlreadyReturned
	}
	dist := prev
	dist.Status = domain.DistributionStatusReturned
	dist.ReturnedDate = s.today()
	dist.ConditionOnReturn = conditionOnReturn
	if err := s.journalSave(ctx, dist); err != nil {
		return domain.Distribution{}, err
	}

	err := s.update(func(next *Snapshot) error {
		di := next.distributionIndex(dist.ID)
		if di < 0 {
			return ErrDistributionNotFound
		}
		next.Distributions[di] = dist
		if i := next.itemIndex(dist.ItemID); i >= 0 {
			item := next.Items[i]
			item.AvailableQuantity += dist.Quantity
			item.DistributedQuantity -= dist.Quantity
			next.Items[i] = item
		}
		return nil
	})
	if err != nil {
		if jerr := s.journalSave(ctx, prev); jerr != nil {
			s.log.ErrorContext(ctx, "Failed to restore journaled distribution", "distribution_id", prev.ID, "error", jerr)
		}
		return domain.Distribution{}, err
	}
	s.log.InfoContext(ctx, "Item returned", "distribution_id", dist.ID, "item_id", dist.ItemID, "quantity", dist.Quantity)
	return dist, nil
}

// MarkOverdue flips distributed records whose expected return date lies
// before asOf to overdue and reports how many changed. Rows are journaled one
// by one; if a write fails, the rows already journaled are still published
// and the error is returned with their count.
func (s *Store) MarkOverdue(ctx context.Context, asOf time.Time) (int, error) {
	s.jmu.Lock()
	defer s.jmu.Unlock()
	if s.isClosed() {
		return 0, ErrClosed
	}

	cutoff := domain.DateString(asOf)
	var saved []string
	var jerr error
	for _, d := range s.Snapshot().Distributions {
		if d.Status != domain.DistributionStatusDistributed || d.ExpectedReturnDate == "" {
			continue
		}
		due, ok := domain.ParseDate(d.ExpectedReturnDate)
		if !ok || domain.DateString(due) >= cutoff {
			continue
		}
		d.Status = domain.DistributionStatusOverdue
		if jerr = s.journalSave(ctx, d); jerr != nil {
			break
		}
		saved = append(saved, d.ID)
	}

	if len(saved) > 0 {
		err := s.update(func(next *Snapshot) error {
			for _, id := range saved {
				if i := next.distributionIndex(id); i >= 0 {
					next.Distributions[i].Status = domain.DistributionStatusOverdue
				}
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
		s.log.InfoContext(ctx, "Distributions marked overdue", "count", len(saved), "as_of", cutoff)
	}
	return len(saved), jerr
}

func (s *Store) journalSave(ctx context.Context, d domain.Distribution) error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.Save(ctx, d); err != nil {
		return fmt.Errorf("journal distribution %s: %w", d.ID, err)
	}
	return nil
}

func (s *Store) journalDelete(ctx context.Context, id string) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Delete(ctx, id); err != nil {
		s.log.ErrorContext(ctx, "Failed to withdraw journaled distribution", "distribution_id", id, "error", err)
	}
}
