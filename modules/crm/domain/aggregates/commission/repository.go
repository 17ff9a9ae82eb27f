package commission

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("commission not found")
	// ErrCompanyNotFound means the referenced company id does not exist
	// for the current tenant.
	ErrCompanyNotFound = errors.New("referenced company not found for tenant")
)

type FindParams struct {
	Period string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Commission, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Commission, error)
	Create(ctx context.Context, c Commission) (Commission, error)
}
