package ledger

import (
	"context"
	"slices"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/receipt"
)

// AddCredit records a donation optimistically with the next receipt serial
// and creates it remotely in the background.
func (s *Store) AddCredit(ctx context.Context, draft domain.CreditDraft) (domain.Credit, *Pending[domain.Credit], error) {
	now := s.now()
	local := domain.Credit{
		ID:            s.tempID(),
		DonorName:     draft.DonorName,
		Amount:        draft.Amount,
		Date:          draft.Date,
		Purpose:       draft.Purpose,
		PaymentMethod: draft.PaymentMethod,
		ContactInfo:   draft.ContactInfo,
		CreatedAt:     domain.DateString(now),
	}
	pending := newPending[domain.Credit]()

	err := s.launch(local.ID, func(next *Snapshot) error {
		local.SerialNumber = receipt.Next(next.Credits, now)
		next.Credits = prepend(local, next.Credits)
		return nil
	}, func(bg context.Context) {
		confirmed, err := s.completeCredit(bg, local, draft)
		pending.resolve(confirmed, err)
		s.settleThenReconcile(bg, moneyCollections)
	})
	if err != nil {
		return domain.Credit{}, nil, err
	}
	s.log.InfoContext(ctx, "Credit recorded locally", "temp_id", local.ID, "serial", local.SerialNumber)
	return local, pending, nil
}

func (s *Store) completeCredit(ctx context.Context, local domain.Credit, draft domain.CreditDraft) (domain.Credit, error) {
	defer s.confirm(local.ID)
	created, err := s.remote.CreateCredit(ctx, draft)
	if err != nil {
		s.log.Error("Failed to add credit", append(logAttrsFor("AddCredit", local.ID), "error", err)...)
		s.patch(func(next *Snapshot) {
			next.Credits = slices.DeleteFunc(next.Credits, func(c domain.Credit) bool { return c.ID == local.ID })
		})
		return domain.Credit{}, wrapRemote("add credit", err)
	}
	confirmed := local
	confirmed.ID = created.ID
	s.patch(func(next *Snapshot) {
		if i := slices.IndexFunc(next.Credits, func(c domain.Credit) bool { return c.ID == local.ID }); i >= 0 {
			next.Credits[i].ID = created.ID
		}
	})
	return confirmed, nil
}

// AddExpense records an expense optimistically. Balance sufficiency is the
// caller's concern.
func (s *Store) AddExpense(ctx context.Context, draft domain.ExpenseDraft) (domain.Expense, *Pending[domain.Expense], error) {
	local := domain.Expense{
		ID:              s.tempID(),
		Amount:          draft.Amount,
		Date:            draft.Date,
		Purpose:         draft.Purpose,
		Category:        draft.Category,
		BeneficiaryName: draft.BeneficiaryName,
		CreatedAt:       s.today(),
	}
	pending := newPending[domain.Expense]()

	err := s.launch(local.ID, func(next *Snapshot) error {
		next.Expenses = prepend(local, next.Expenses)
		return nil
	}, func(bg context.Context) {
		confirmed, err := s.completeExpense(bg, local, draft)
		pending.resolve(confirmed, err)
		s.settleThenReconcile(bg, moneyCollections)
	})
	if err != nil {
		return domain.Expense{}, nil, err
	}
	s.log.InfoContext(ctx, "Expense recorded locally", "temp_id", local.ID)
	return local, pending, nil
}

func (s *Store) completeExpense(ctx context.Context, local domain.Expense, draft domain.ExpenseDraft) (domain.Expense, error) {
	defer s.confirm(local.ID)
	created, err := s.remote.CreateExpense(ctx, draft)
	if err != nil {
		s.log.Error("Failed to add expense", append(logAttrsFor("AddExpense", local.ID), "error", err)...)
		s.patch(func(next *Snapshot) {
			next.Expenses = slices.DeleteFunc(next.Expenses, func(e domain.Expense) bool { return e.ID == local.ID })
		})
		return domain.Expense{}, wrapRemote("add expense", err)
	}
	confirmed := local
	confirmed.ID = created.ID
	s.patch(func(next *Snapshot) {
		if i := slices.IndexFunc(next.Expenses, func(e domain.Expense) bool { return e.ID == local.ID }); i >= 0 {
			next.Expenses[i].ID = created.ID
		}
	})
	return confirmed, nil
}

// patch applies an unconditional change. Once the store is closed the
// snapshot is left alone.
func (s *Store) patch(fn func(next *Snapshot)) {
	_ = s.update(func(next *Snapshot) error {
		fn(next)
		return nil
	})
}
