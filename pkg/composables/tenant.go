package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/pkg/constants"
)

var (
	ErrNoTenantID = errors.New("no tenant id found in context")
)

// WithTenantID returns a new context carrying the resolved tenant identity.
// Set exactly once per request by the tenant middleware; everything below
// the middleware reads it back through UseTenantID.
func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, tenantID)
}

// UseTenantID returns the tenant id from the context. Repositories must
// fail closed when it is absent: no tenant, no reads, no writes.
func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := ctx.Value(constants.TenantIDKey).(uuid.UUID)
	if !ok || tenantID == uuid.Nil {
		return uuid.Nil, ErrNoTenantID
	}
	return tenantID, nil
}
