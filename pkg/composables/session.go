package composables

import (
	"context"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/pkg/constants"
)

// Session is the authenticated state attached to a request by an auth
// layer upstream of tenant resolution. The tenant id it carries wins
// over host based lookup.
type Session struct {
	Token    string
	TenantID uuid.UUID
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, s)
}

func UseSession(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(constants.SessionKey).(*Session)
	return s, ok && s != nil
}
