package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrSKUTaken = errors.New("product sku already exists")
	// ErrManufacturerNotFound means the referenced manufacturer id does
	// not exist for the current tenant.
	ErrManufacturerNotFound = errors.New("referenced manufacturer not found for tenant")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Product, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
}
