package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fieldline/fieldline/modules/core/domain/entities/tenant"
	"github.com/fieldline/fieldline/pkg/composables"
)

const (
	tenantFindQuery = `SELECT id, name, domain, is_active, created_at, updated_at FROM tenants`
	tenantInsertQuery = `
		INSERT INTO tenants (id, name, domain, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, domain, is_active, created_at, updated_at`
)

type TenantRepository struct{}

func NewTenantRepository() tenant.Repository {
	return &TenantRepository{}
}

func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, tenantFindQuery+" WHERE id = $1", id)
	return scanTenant(row)
}

func (r *TenantRepository) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, tenantFindQuery+" WHERE domain = $1", strings.ToLower(strings.TrimSpace(domain)))
	return scanTenant(row)
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, tenantInsertQuery,
		t.ID(),
		t.Name(),
		strings.ToLower(strings.TrimSpace(t.Domain())),
		t.IsActive(),
		t.CreatedAt(),
		t.UpdatedAt(),
	)
	created, err := scanTenant(row)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to create tenant")
	}
	return created, nil
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var (
		id                   uuid.UUID
		name, domain         string
		isActive             bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &domain, &isActive, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrNotFound
		}
		return nil, err
	}
	return tenant.New(
		name,
		tenant.WithID(id),
		tenant.WithDomain(domain),
		tenant.WithIsActive(isActive),
		tenant.WithCreatedAt(createdAt),
		tenant.WithUpdatedAt(updatedAt),
	), nil
}
