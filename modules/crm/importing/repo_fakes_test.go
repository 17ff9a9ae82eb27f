package importing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/commission"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/company"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/contact"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/manufacturer"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/product"
	"github.com/fieldline/fieldline/pkg/composables"
)

// In-memory repositories for executor tests. They mirror the storage
// contracts that matter here: ids are assigned on create, names are
// unique per tenant, and every call requires a tenant in the context.

type fakeCompanyRepo struct {
	items []company.Company
}

func (r *fakeCompanyRepo) GetPaginated(ctx context.Context, params *company.FindParams) ([]company.Company, int64, error) {
	return r.items, int64(len(r.items)), nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	for _, item := range r.items {
		if item.ID() == id {
			return item, nil
		}
	}
	return company.Company{}, company.ErrNotFound
}

func (r *fakeCompanyRepo) ListForSelect(ctx context.Context) ([]company.Ref, error) {
	if _, err := composables.UseTenantID(ctx); err != nil {
		return nil, err
	}
	refs := make([]company.Ref, 0, len(r.items))
	for _, item := range r.items {
		refs = append(refs, company.Ref{ID: item.ID(), Name: item.Name()})
	}
	return refs, nil
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c company.Company) (company.Company, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return company.Company{}, err
	}
	for _, item := range r.items {
		if strings.EqualFold(item.Name(), c.Name()) {
			return company.Company{}, company.ErrNameTaken
		}
	}
	created := company.Hydrate(uuid.New(), tenantID, c.Name(), c.Website(), c.Industry(), c.City(), time.Now(), time.Now())
	r.items = append(r.items, created)
	return created, nil
}

func (r *fakeCompanyRepo) seed(tenantID uuid.UUID, name string) company.Company {
	created := company.Hydrate(uuid.New(), tenantID, name, "", "", "", time.Now(), time.Now())
	r.items = append(r.items, created)
	return created
}

type fakeManufacturerRepo struct {
	items   []manufacturer.Manufacturer
	creates int
}

func (r *fakeManufacturerRepo) GetPaginated(ctx context.Context, params *manufacturer.FindParams) ([]manufacturer.Manufacturer, int64, error) {
	return r.items, int64(len(r.items)), nil
}

func (r *fakeManufacturerRepo) GetByID(ctx context.Context, id uuid.UUID) (manufacturer.Manufacturer, error) {
	for _, item := range r.items {
		if item.ID() == id {
			return item, nil
		}
	}
	return manufacturer.Manufacturer{}, manufacturer.ErrNotFound
}

func (r *fakeManufacturerRepo) ListForSelect(ctx context.Context) ([]manufacturer.Ref, error) {
	if _, err := composables.UseTenantID(ctx); err != nil {
		return nil, err
	}
	refs := make([]manufacturer.Ref, 0, len(r.items))
	for _, item := range r.items {
		refs = append(refs, manufacturer.Ref{ID: item.ID(), Name: item.Name()})
	}
	return refs, nil
}

func (r *fakeManufacturerRepo) Create(ctx context.Context, m manufacturer.Manufacturer) (manufacturer.Manufacturer, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return manufacturer.Manufacturer{}, err
	}
	for _, item := range r.items {
		if strings.EqualFold(item.Name(), m.Name()) {
			return manufacturer.Manufacturer{}, manufacturer.ErrNameTaken
		}
	}
	r.creates++
	created := manufacturer.Hydrate(uuid.New(), tenantID, m.Name(), time.Now(), time.Now())
	r.items = append(r.items, created)
	return created, nil
}

type fakeContactRepo struct {
	items []contact.Contact
}

func (r *fakeContactRepo) GetPaginated(ctx context.Context, params *contact.FindParams) ([]contact.Contact, int64, error) {
	return r.items, int64(len(r.items)), nil
}

func (r *fakeContactRepo) GetByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	for _, item := range r.items {
		if item.ID() == id {
			return item, nil
		}
	}
	return contact.Contact{}, contact.ErrNotFound
}

func (r *fakeContactRepo) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	created := contact.Hydrate(uuid.New(), tenantID, c.FirstName(), c.LastName(), c.Email(), c.Phone(), c.Title(), c.CompanyID(), time.Now(), time.Now())
	r.items = append(r.items, created)
	return created, nil
}

type fakeProductRepo struct {
	items []product.Product
}

func (r *fakeProductRepo) GetPaginated(ctx context.Context, params *product.FindParams) ([]product.Product, int64, error) {
	return r.items, int64(len(r.items)), nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (product.Product, error) {
	for _, item := range r.items {
		if item.ID() == id {
			return item, nil
		}
	}
	return product.Product{}, product.ErrNotFound
}

func (r *fakeProductRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return product.Product{}, err
	}
	for _, item := range r.items {
		if p.SKU() != "" && item.SKU() == p.SKU() {
			return product.Product{}, product.ErrSKUTaken
		}
	}
	created := product.Hydrate(uuid.New(), tenantID, p.Name(), p.SKU(), p.Price(), p.ManufacturerID(), time.Now(), time.Now())
	r.items = append(r.items, created)
	return created, nil
}

type fakeCommissionRepo struct {
	items []commission.Commission
	// ids of companies owned by the current tenant; a referenced id
	// outside this set fails the create, like the real repository's
	// ownership check.
	ownedCompanies map[uuid.UUID]bool
}

func (r *fakeCommissionRepo) GetPaginated(ctx context.Context, params *commission.FindParams) ([]commission.Commission, int64, error) {
	return r.items, int64(len(r.items)), nil
}

func (r *fakeCommissionRepo) GetByID(ctx context.Context, id uuid.UUID) (commission.Commission, error) {
	for _, item := range r.items {
		if item.ID() == id {
			return item, nil
		}
	}
	return commission.Commission{}, commission.ErrNotFound
}

func (r *fakeCommissionRepo) Create(ctx context.Context, c commission.Commission) (commission.Commission, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return commission.Commission{}, err
	}
	if r.ownedCompanies != nil && !r.ownedCompanies[c.CompanyID()] {
		return commission.Commission{}, commission.ErrCompanyNotFound
	}
	created := commission.Hydrate(uuid.New(), tenantID, c.CompanyID(), c.Amount(), c.Rate(), c.Period(), c.Notes(), time.Now(), time.Now())
	r.items = append(r.items, created)
	return created, nil
}

type fakeRepos struct {
	contacts      *fakeContactRepo
	companies     *fakeCompanyRepo
	manufacturers *fakeManufacturerRepo
	products      *fakeProductRepo
	commissions   *fakeCommissionRepo
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		contacts:      &fakeContactRepo{},
		companies:     &fakeCompanyRepo{},
		manufacturers: &fakeManufacturerRepo{},
		products:      &fakeProductRepo{},
		commissions:   &fakeCommissionRepo{},
	}
}

func (f *fakeRepos) executor() *Executor {
	return NewExecutor(f.contacts, f.companies, f.manufacturers, f.products, f.commissions)
}
