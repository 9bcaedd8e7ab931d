package ledger

import "context"

// Pending resolves once the remote write behind an optimistic record has
// finished, with the confirmed record or the error that caused the record to
// be withdrawn.
type Pending[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

func (p *Pending[T]) resolve(val T, err error) {
	p.val, p.err = val, err
	close(p.done)
}

// Done is closed when the result is available.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
