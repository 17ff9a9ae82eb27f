package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("company not found")
	ErrNameTaken = errors.New("company name already exists")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

// Ref is the shape used to seed name resolution: id plus display name.
type Ref struct {
	ID   uuid.UUID
	Name string
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Company, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	// ListForSelect returns every company of the current tenant as
	// id/name pairs, in name order.
	ListForSelect(ctx context.Context) ([]Ref, error)
	Create(ctx context.Context, c Company) (Company, error)
}
