package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/repo"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// useTenantTx returns the current tenant id and query surface, failing
// closed when either is missing from the context.
func useTenantTx(ctx context.Context) (uuid.UUID, repo.Tx, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to get tenant from context: %w", err)
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return tenantID, tx, nil
}

// existsForTenant verifies that a referenced id belongs to the tenant.
// This is the authoritative tenant-isolation check for foreign
// references, independent of any cache the caller may hold.
func existsForTenant(ctx context.Context, tx repo.Tx, table string, id, tenantID uuid.UUID) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1 AND tenant_id = $2)", table)
	var exists bool
	if err := tx.QueryRow(ctx, query, id, tenantID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func normalizeFind(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
