package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/commission"
)

const (
	commissionSelectQuery = `
		SELECT id, tenant_id, company_id, amount, rate, period, notes, created_at, updated_at
		FROM commissions`
	commissionInsertQuery = `
		INSERT INTO commissions (tenant_id, company_id, amount, rate, period, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, tenant_id, company_id, amount, rate, period, notes, created_at, updated_at`
	commissionCountQuery = `
		SELECT COUNT(*) FROM commissions WHERE tenant_id = $1 AND ($2 = '' OR period = $2)`
)

type CommissionRepository struct{}

func NewCommissionRepository() commission.Repository {
	return &CommissionRepository{}
}

func (r *CommissionRepository) GetPaginated(ctx context.Context, params *commission.FindParams) ([]commission.Commission, int64, error) {
	if params == nil {
		params = &commission.FindParams{}
	}

	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := normalizeFind(params.Limit, params.Offset)
	period := strings.TrimSpace(params.Period)

	query := commissionSelectQuery + `
		WHERE tenant_id = $1 AND ($2 = '' OR period = $2)
		ORDER BY created_at DESC OFFSET $3 LIMIT $4`
	rows, err := tx.Query(ctx, query, tenantID, period, offset, limit)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to query commissions")
	}
	defer rows.Close()

	out := make([]commission.Commission, 0, limit)
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, commissionCountQuery, tenantID, period).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to count commissions")
	}

	return out, total, nil
}

func (r *CommissionRepository) GetByID(ctx context.Context, id uuid.UUID) (commission.Commission, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return commission.Commission{}, err
	}

	row := tx.QueryRow(ctx, commissionSelectQuery+" WHERE id = $1 AND tenant_id = $2", id, tenantID)
	c, err := scanCommission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commission.Commission{}, commission.ErrNotFound
		}
		return commission.Commission{}, err
	}
	return c, nil
}

func (r *CommissionRepository) Create(ctx context.Context, c commission.Commission) (commission.Commission, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return commission.Commission{}, err
	}

	ok, err := existsForTenant(ctx, tx, "companies", c.CompanyID(), tenantID)
	if err != nil {
		return commission.Commission{}, gerrors.Wrap(err, "failed to verify company reference")
	}
	if !ok {
		return commission.Commission{}, commission.ErrCompanyNotFound
	}

	row := tx.QueryRow(ctx, commissionInsertQuery,
		tenantID,
		c.CompanyID(),
		c.Amount(),
		c.Rate(),
		c.Period(),
		c.Notes(),
	)
	created, err := scanCommission(row)
	if err != nil {
		return commission.Commission{}, gerrors.Wrap(err, "failed to create commission")
	}
	return created, nil
}

func scanCommission(row pgx.Row) (commission.Commission, error) {
	var (
		id, tenantID, companyID uuid.UUID
		amount, rate            decimal.Decimal
		period, notes           string
		createdAt, updatedAt    time.Time
	)
	if err := row.Scan(&id, &tenantID, &companyID, &amount, &rate, &period, &notes, &createdAt, &updatedAt); err != nil {
		return commission.Commission{}, err
	}
	return commission.Hydrate(id, tenantID, companyID, amount, rate, period, notes, createdAt, updatedAt), nil
}
