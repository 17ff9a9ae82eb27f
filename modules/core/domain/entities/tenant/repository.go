package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("tenant not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)
	Create(ctx context.Context, t *Tenant) (*Tenant, error)
}
