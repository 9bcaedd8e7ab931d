// Package ledger keeps the in-memory mirror of the ledger service: credits,
// expenses, items and the locally tracked distributions.
//
// Mutations are applied optimistically to a copy of the current snapshot and
// published atomically. Remote writes run in the background; when one
// finishes the store fixes up or withdraws the optimistic record and, after a
// short settle delay, re-fetches the affected collections.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/logger"
)

const (
	DefaultSettleDelay = 500 * time.Millisecond
	DefaultPageSize    = 500

	tempIDPrefix = "local-"
)

// Remote is the subset of the ledger service the store mirrors.
type Remote interface {
	DashboardMetrics(ctx context.Context) (domain.RemoteMetrics, error)
	ListCredits(ctx context.Context, q domain.ListQuery) ([]domain.Credit, error)
	CreateCredit(ctx context.Context, d domain.CreditDraft) (domain.Credit, error)
	ListExpenses(ctx context.Context, q domain.ListQuery) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, d domain.ExpenseDraft) (domain.Expense, error)
	ListItems(ctx context.Context, q domain.ListQuery) ([]domain.Item, error)
	CreateItem(ctx context.Context, d domain.ItemDraft) (domain.Item, error)
}

// Journal durably records distributions, which the ledger service never sees.
type Journal interface {
	Save(ctx context.Context, d domain.Distribution) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Distribution, error)
}

type Option func(*Store)

func WithJournal(j Journal) Option {
	return func(s *Store) {
		s.journal = j
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithSettleDelay sets the pause between a finished remote write and the
// re-fetch that follows it.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Store) {
		s.settle = d
	}
}

// WithPageSize sets per_page on list fetches. The service paginates, so this
// bounds how many records a reconciliation mirrors.
func WithPageSize(n int) Option {
	return func(s *Store) {
		s.pageSize = n
	}
}

type Store struct {
	remote   Remote
	journal  Journal
	now      func() time.Time
	settle   time.Duration
	pageSize int
	log      *slog.Logger
	seq      atomic.Uint64

	snap atomic.Pointer[Snapshot]

	// jmu serialises the operations that write the journal, so journal I/O
	// happens outside mu. Always taken before mu.
	jmu sync.Mutex

	// mu serialises writers and guards the fields below.
	mu       sync.Mutex
	closed   bool
	inflight int
	idle     chan struct{}
	// temporary ids whose remote create has not finished yet
	unconfirmed map[string]struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

func New(remote Remote, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		remote:      remote,
		now:         time.Now,
		settle:      DefaultSettleDelay,
		pageSize:    DefaultPageSize,
		log:         logger.WithComponent("ledger"),
		idle:        make(chan struct{}),
		unconfirmed: make(map[string]struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
	close(s.idle)
	s.snap.Store(&Snapshot{})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activate performs the initial load. Failed fetches are logged and leave
// their collection as it was.
func (s *Store) Activate(ctx context.Context) {
	if s.journal != nil {
		s.jmu.Lock()
		dists, err := s.journal.List(ctx)
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to load distribution journal", "error", err)
		} else if err := s.update(func(next *Snapshot) error {
			next.Distributions = dists
			return nil
		}); err != nil {
			s.log.WarnContext(ctx, "Distribution journal not applied", "error", err)
		}
		s.jmu.Unlock()
	}
	s.reconcile(ctx, allCollections)
}

// Refresh re-fetches every mirrored collection.
func (s *Store) Refresh(ctx context.Context) {
	s.reconcile(ctx, allCollections)
}

// Snapshot returns the current published snapshot. It must not be modified.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Drain waits until no background write or reconciliation is running.
func (s *Store) Drain(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels background work and waits for it to stop. Later mutations
// fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	idle := s.idle
	s.mu.Unlock()

	s.cancel()
	<-idle
	return nil
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// update applies fn to a private copy of the current snapshot and publishes
// the copy if fn succeeds.
func (s *Store) update(fn func(next *Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(fn)
}

func (s *Store) updateLocked(fn func(next *Snapshot) error) error {
	if s.closed {
		return ErrClosed
	}
	next := s.snap.Load().clone()
	if err := fn(next); err != nil {
		return err
	}
	s.snap.Store(next)
	return nil
}

// launch publishes an optimistic change and starts its background work in
// the same critical section, so Close cannot slip in between.
func (s *Store) launch(tempID string, fn func(next *Snapshot) error, work func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.updateLocked(fn); err != nil {
		return err
	}
	s.unconfirmed[tempID] = struct{}{}
	if s.inflight == 0 {
		s.idle = make(chan struct{})
	}
	s.inflight++
	go func() {
		defer s.finish()
		work(s.ctx)
	}()
	return nil
}

func (s *Store) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.inflight == 0 {
		close(s.idle)
	}
}

func (s *Store) confirm(tempID string) {
	s.mu.Lock()
	delete(s.unconfirmed, tempID)
	s.mu.Unlock()
}

// settleThenReconcile waits for the settle delay and re-fetches the given
// collections, unless the store is shutting down.
func (s *Store) settleThenReconcile(ctx context.Context, which collection) {
	if ctx.Err() != nil {
		return
	}
	if s.settle > 0 {
		t := time.NewTimer(s.settle)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
	}
	s.reconcile(ctx, which)
}

func (s *Store) tempID() string {
	return tempIDPrefix + strconv.FormatInt(s.now().UnixNano(), 10) + "-" + strconv.FormatUint(s.seq.Add(1), 10)
}

// IsTemporaryID reports whether id was assigned locally to a record the
// ledger service has not confirmed.
func IsTemporaryID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}

func (s *Store) today() string {
	return domain.DateString(s.now())
}

func (s *Store) listQuery() domain.ListQuery {
	return domain.ListQuery{PerPage: s.pageSize}
}

func logAttrsFor(op, id string) []any {
	return []any{"operation", op, "temp_id", id}
}

func wrapRemote(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
