package casestudies

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("case study not found")

type Repository interface {
	List(ctx context.Context) ([]CaseStudy, error)
	GetByID(ctx context.Context, id int64) (CaseStudy, error)
	// Create assigns the next id (max existing + 1, starting at 1) and
	// returns the stored record.
	Create(ctx context.Context, item CaseStudy) (CaseStudy, error)
	Update(ctx context.Context, id int64, patch Patch) (CaseStudy, error)
	// Delete reports whether a record was removed; deleting a missing id
	// is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}
