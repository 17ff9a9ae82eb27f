package composables

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInTx_RequiresPool(t *testing.T) {
	err := InTx(context.Background(), func(ctx context.Context) error {
		t.Fatal("must not run without a pool")
		return nil
	})
	require.ErrorIs(t, err, ErrNoPool)
}

func TestInTenantTx_RequiresTenantBeforeOpeningTx(t *testing.T) {
	err := InTenantTx(context.Background(), func(ctx context.Context) error {
		t.Fatal("must not run without a tenant")
		return nil
	})
	require.ErrorIs(t, err, ErrNoTenantID)
}

func TestInTenantTx_WithTenantProceedsToTx(t *testing.T) {
	ctx := WithTenantID(context.Background(), uuid.New())

	// The tenant guard passes; the failure comes from the missing pool,
	// proving the helper reached InTx.
	err := InTenantTx(ctx, func(ctx context.Context) error { return nil })
	require.ErrorIs(t, err, ErrNoPool)
}
