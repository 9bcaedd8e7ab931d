package repository

import (
	"context"
	"time"

	"github.com/Munazil1/centswise/internal/domain"
)

// DistributionRepository is the durable journal of local distributions.
type DistributionRepository interface {
	// Save inserts or replaces a distribution by id.
	Save(ctx context.Context, d domain.Distribution) error
	// Delete removes a distribution that was never published.
	Delete(ctx context.Context, id string) error
	// List returns every distribution, newest distributed date first.
	List(ctx context.Context) ([]domain.Distribution, error)
	// MarkOverdue flips distributed rows due before asOf and returns their ids.
	MarkOverdue(ctx context.Context, asOf time.Time) ([]string, error)
}
