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

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/product"
)

const (
	productSelectQuery = `
		SELECT id, tenant_id, name, sku, price, manufacturer_id, created_at, updated_at
		FROM products`
	productInsertQuery = `
		INSERT INTO products (tenant_id, name, sku, price, manufacturer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tenant_id, name, sku, price, manufacturer_id, created_at, updated_at`
	productCountQuery = `
		SELECT COUNT(*) FROM products
		WHERE tenant_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR sku ILIKE '%' || $2 || '%')`
)

type ProductRepository struct{}

func NewProductRepository() product.Repository {
	return &ProductRepository{}
}

func (r *ProductRepository) GetPaginated(ctx context.Context, params *product.FindParams) ([]product.Product, int64, error) {
	if params == nil {
		params = &product.FindParams{}
	}

	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := normalizeFind(params.Limit, params.Offset)
	q := strings.TrimSpace(params.Q)

	query := productSelectQuery + `
		WHERE tenant_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR sku ILIKE '%' || $2 || '%')
		ORDER BY name OFFSET $3 LIMIT $4`
	rows, err := tx.Query(ctx, query, tenantID, q, offset, limit)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to query products")
	}
	defer rows.Close()

	out := make([]product.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, productCountQuery, tenantID, q).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to count products")
	}

	return out, total, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (product.Product, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return product.Product{}, err
	}

	row := tx.QueryRow(ctx, productSelectQuery+" WHERE id = $1 AND tenant_id = $2", id, tenantID)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}
		return product.Product{}, err
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p product.Product) (product.Product, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return product.Product{}, err
	}

	ok, err := existsForTenant(ctx, tx, "manufacturers", p.ManufacturerID(), tenantID)
	if err != nil {
		return product.Product{}, gerrors.Wrap(err, "failed to verify manufacturer reference")
	}
	if !ok {
		return product.Product{}, product.ErrManufacturerNotFound
	}

	row := tx.QueryRow(ctx, productInsertQuery,
		tenantID,
		p.Name(),
		p.SKU(),
		p.Price(),
		p.ManufacturerID(),
	)
	created, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return product.Product{}, product.ErrSKUTaken
		}
		return product.Product{}, gerrors.Wrap(err, "failed to create product")
	}
	return created, nil
}

func scanProduct(row pgx.Row) (product.Product, error) {
	var (
		id, tenantID, manufacturerID uuid.UUID
		name, sku                    string
		price                        decimal.Decimal
		createdAt, updatedAt         time.Time
	)
	if err := row.Scan(&id, &tenantID, &name, &sku, &price, &manufacturerID, &createdAt, &updatedAt); err != nil {
		return product.Product{}, err
	}
	return product.Hydrate(id, tenantID, name, sku, price, manufacturerID, createdAt, updatedAt), nil
}
