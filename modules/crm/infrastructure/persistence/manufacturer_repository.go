package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/manufacturer"
)

const (
	manufacturerSelectQuery = `
		SELECT id, tenant_id, name, created_at, updated_at
		FROM manufacturers`
	manufacturerInsertQuery = `
		INSERT INTO manufacturers (tenant_id, name)
		VALUES ($1, $2)
		RETURNING id, tenant_id, name, created_at, updated_at`
	manufacturerCountQuery = `
		SELECT COUNT(*) FROM manufacturers WHERE tenant_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')`
	manufacturerRefsQuery = `
		SELECT id, name FROM manufacturers WHERE tenant_id = $1 ORDER BY name`
)

type ManufacturerRepository struct{}

func NewManufacturerRepository() manufacturer.Repository {
	return &ManufacturerRepository{}
}

func (r *ManufacturerRepository) GetPaginated(ctx context.Context, params *manufacturer.FindParams) ([]manufacturer.Manufacturer, int64, error) {
	if params == nil {
		params = &manufacturer.FindParams{}
	}

	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := normalizeFind(params.Limit, params.Offset)
	q := strings.TrimSpace(params.Q)

	query := manufacturerSelectQuery + `
		WHERE tenant_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name OFFSET $3 LIMIT $4`
	rows, err := tx.Query(ctx, query, tenantID, q, offset, limit)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to query manufacturers")
	}
	defer rows.Close()

	out := make([]manufacturer.Manufacturer, 0, limit)
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, manufacturerCountQuery, tenantID, q).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to count manufacturers")
	}

	return out, total, nil
}

func (r *ManufacturerRepository) GetByID(ctx context.Context, id uuid.UUID) (manufacturer.Manufacturer, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return manufacturer.Manufacturer{}, err
	}

	row := tx.QueryRow(ctx, manufacturerSelectQuery+" WHERE id = $1 AND tenant_id = $2", id, tenantID)
	m, err := scanManufacturer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return manufacturer.Manufacturer{}, manufacturer.ErrNotFound
		}
		return manufacturer.Manufacturer{}, err
	}
	return m, nil
}

func (r *ManufacturerRepository) ListForSelect(ctx context.Context) ([]manufacturer.Ref, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, manufacturerRefsQuery, tenantID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list manufacturers")
	}
	defer rows.Close()

	var out []manufacturer.Ref
	for rows.Next() {
		var ref manufacturer.Ref
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *ManufacturerRepository) Create(ctx context.Context, m manufacturer.Manufacturer) (manufacturer.Manufacturer, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return manufacturer.Manufacturer{}, err
	}

	row := tx.QueryRow(ctx, manufacturerInsertQuery, tenantID, m.Name())
	created, err := scanManufacturer(row)
	if err != nil {
		if isUniqueViolation(err) {
			return manufacturer.Manufacturer{}, manufacturer.ErrNameTaken
		}
		return manufacturer.Manufacturer{}, gerrors.Wrap(err, "failed to create manufacturer")
	}
	return created, nil
}

func scanManufacturer(row pgx.Row) (manufacturer.Manufacturer, error) {
	var (
		id, tenantID         uuid.UUID
		name                 string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &tenantID, &name, &createdAt, &updatedAt); err != nil {
		return manufacturer.Manufacturer{}, err
	}
	return manufacturer.Hydrate(id, tenantID, name, createdAt, updatedAt), nil
}
