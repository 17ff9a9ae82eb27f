package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/contact"
)

const (
	contactSelectQuery = `
		SELECT id, tenant_id, first_name, last_name, email, phone, title, company_id, created_at, updated_at
		FROM contacts`
	contactInsertQuery = `
		INSERT INTO contacts (tenant_id, first_name, last_name, email, phone, title, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, tenant_id, first_name, last_name, email, phone, title, company_id, created_at, updated_at`
	contactCountQuery = `
		SELECT COUNT(*) FROM contacts
		WHERE tenant_id = $1 AND ($2 = '' OR first_name ILIKE '%' || $2 || '%' OR last_name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')`
)

type ContactRepository struct{}

func NewContactRepository() contact.Repository {
	return &ContactRepository{}
}

func (r *ContactRepository) GetPaginated(ctx context.Context, params *contact.FindParams) ([]contact.Contact, int64, error) {
	if params == nil {
		params = &contact.FindParams{}
	}

	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := normalizeFind(params.Limit, params.Offset)
	q := strings.TrimSpace(params.Q)

	query := contactSelectQuery + `
		WHERE tenant_id = $1 AND ($2 = '' OR first_name ILIKE '%' || $2 || '%' OR last_name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY last_name, first_name OFFSET $3 LIMIT $4`
	rows, err := tx.Query(ctx, query, tenantID, q, offset, limit)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to query contacts")
	}
	defer rows.Close()

	out := make([]contact.Contact, 0, limit)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, contactCountQuery, tenantID, q).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "failed to count contacts")
	}

	return out, total, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return contact.Contact{}, err
	}

	row := tx.QueryRow(ctx, contactSelectQuery+" WHERE id = $1 AND tenant_id = $2", id, tenantID)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contact.Contact{}, contact.ErrNotFound
		}
		return contact.Contact{}, err
	}
	return c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	tenantID, tx, err := useTenantTx(ctx)
	if err != nil {
		return contact.Contact{}, err
	}

	// Any referenced company must belong to the same tenant. The check
	// runs here, not in the caller, so no creation path can skip it.
	if c.CompanyID() != nil {
		ok, err := existsForTenant(ctx, tx, "companies", *c.CompanyID(), tenantID)
		if err != nil {
			return contact.Contact{}, gerrors.Wrap(err, "failed to verify company reference")
		}
		if !ok {
			return contact.Contact{}, contact.ErrCompanyNotFound
		}
	}

	row := tx.QueryRow(ctx, contactInsertQuery,
		tenantID,
		c.FirstName(),
		c.LastName(),
		c.Email(),
		c.Phone(),
		c.Title(),
		c.CompanyID(),
	)
	created, err := scanContact(row)
	if err != nil {
		return contact.Contact{}, gerrors.Wrap(err, "failed to create contact")
	}
	return created, nil
}

func scanContact(row pgx.Row) (contact.Contact, error) {
	var (
		id, tenantID                             uuid.UUID
		firstName, lastName, email, phone, title string
		companyID                                *uuid.UUID
		createdAt, updatedAt                     time.Time
	)
	if err := row.Scan(&id, &tenantID, &firstName, &lastName, &email, &phone, &title, &companyID, &createdAt, &updatedAt); err != nil {
		return contact.Contact{}, err
	}
	return contact.Hydrate(id, tenantID, firstName, lastName, email, phone, title, companyID, createdAt, updatedAt), nil
}
