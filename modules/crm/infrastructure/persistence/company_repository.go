package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/company"
)

const (
	companySelectQuery = `
		SELECT id, tenant_id, name, website, industry, city, created_at, updated_at
		FROM companies`
	companyInsertQuery = `
		INSERT INTO companies (tenant_id, name, website, industry, city)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tenant_id, name, website, industry, city, created_at, updated_at`
	companyCountQuery = `
		SELECT COUNT(*) FROM companies WHERE tenant_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')`
	companyRefsQuery = `
		SELECT id, name FROM companies WHERE tenant_id = $1 ORDER BY name`
)

type CompanyRepository struct{}

func NewCompanyRepository() company.Repository {
	return &CompanyRepository{}
}

func (r *CompanyRepository) GetPaginated(ctx context.Context, params *company.FindParams) ([]company.Company, int64, error) {
	if params == nil {
		params = &company.FindParams{}
	}

	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := normalizeFind(params.Limit, params.Offset)
	q := strings.TrimSpace(params.Q)

	query := companySelectQuery + `
		WHERE tenant_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name OFFSET $3 LIMIT $4`
	rows, err := tx.Query(ctx, query, tenantID, q, offset, limit)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to query companies")
	}
	defer rows.Close()

	out := make([]company.Company, 0, limit)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, companyCountQuery, tenantID, q).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to count companies")
	}

	return out, total, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return company.Company{}, err
	}

	row := tx.QueryRow(ctx, companySelectQuery+" WHERE id = $1 AND tenant_id = $2", id, tenantID)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *CompanyRepository) ListForSelect(ctx context.Context) ([]company.Ref, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, companyRefsQuery, tenantID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list companies")
	}
	defer rows.Close()

	var out []company.Ref
	for rows.Next() {
		var ref company.Ref
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return company.Company{}, err
	}

	row := tx.QueryRow(ctx, companyInsertQuery,
		tenantID,
		c.Name(),
		c.Website(),
		c.Industry(),
		c.City(),
	)
	created, err := scanCompany(row)
	if err != nil {
		if isUniqueViolation(err) {
			return company.Company{}, company.ErrNameTaken
		}
		return company.Company{}, gerrors.Wrap(err, "failed to create company")
	}
	return created, nil
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var (
		id, tenantID                  uuid.UUID
		name, website, industry, city string
		createdAt, updatedAt          time.Time
	)
	if err := row.Scan(&id, &tenantID, &name, &website, &industry, &city, &createdAt, &updatedAt); err != nil {
		return company.Company{}, err
	}
	return company.Hydrate(id, tenantID, name, website, industry, city, createdAt, updatedAt), nil
}
