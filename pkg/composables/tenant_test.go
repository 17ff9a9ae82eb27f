package composables

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUseTenantID_RoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithTenantID(context.Background(), id)

	got, err := UseTenantID(ctx)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestUseTenantID_FailsClosed(t *testing.T) {
	_, err := UseTenantID(context.Background())
	require.ErrorIs(t, err, ErrNoTenantID)

	// A nil uuid is treated the same as a missing one.
	_, err = UseTenantID(WithTenantID(context.Background(), uuid.Nil))
	require.ErrorIs(t, err, ErrNoTenantID)
}
