package manufacturer

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("manufacturer not found")
	ErrNameTaken = errors.New("manufacturer name already exists")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Ref struct {
	ID   uuid.UUID
	Name string
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Manufacturer, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Manufacturer, error)
	ListForSelect(ctx context.Context) ([]Ref, error)
	Create(ctx context.Context, m Manufacturer) (Manufacturer, error)
}
