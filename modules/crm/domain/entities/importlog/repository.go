package importlog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("import log entry not found")

type Repository interface {
	// Record persists one entry and returns its id. Purely additive.
	Record(ctx context.Context, e Entry) (uuid.UUID, error)
	// List returns the tenant's entries ordered by creation time
	// descending, at most limit of them (0 means no cap).
	List(ctx context.Context, limit int) ([]Entry, error)
}
