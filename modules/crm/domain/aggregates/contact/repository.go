package contact

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("contact not found")
	// ErrCompanyNotFound means the referenced company id does not exist
	// for the current tenant. Creation must fail with it whenever the
	// reference cannot be verified, even if the id exists under another
	// tenant.
	ErrCompanyNotFound = errors.New("referenced company not found for tenant")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Contact, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Contact, error)
	Create(ctx context.Context, c Contact) (Contact, error)
}
