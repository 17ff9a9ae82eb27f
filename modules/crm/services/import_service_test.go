package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/commission"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/company"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/contact"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/manufacturer"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/product"
	"github.com/fieldline/fieldline/modules/crm/domain/entities/importlog"
	"github.com/fieldline/fieldline/modules/crm/importing"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/eventbus"
)

// Minimal in-memory repositories for the import orchestration tests.

type memContactRepo struct {
	items []contact.Contact
}

func (r *memContactRepo) GetPaginated(ctx context.Context, params *contact.FindParams) ([]contact.Contact, int64, error) {
	return r.items, int64(len(r.items)), nil
}

func (r *memContactRepo) GetByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	return contact.Contact{}, contact.ErrNotFound
}

func (r *memContactRepo) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	created := contact.Hydrate(uuid.New(), tenantID, c.FirstName(), c.LastName(), c.Email(), c.Phone(), c.Title(), c.CompanyID(), time.Now(), time.Now())
	r.items = append(r.items, created)
	return created, nil
}

type memCompanyRepo struct {
	refs []company.Ref
}

func (r *memCompanyRepo) GetPaginated(ctx context.Context, params *company.FindParams) ([]company.Company, int64, error) {
	return nil, 0, nil
}

func (r *memCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return company.Company{}, company.ErrNotFound
}

func (r *memCompanyRepo) ListForSelect(ctx context.Context) ([]company.Ref, error) {
	return r.refs, nil
}

func (r *memCompanyRepo) Create(ctx context.Context, c company.Company) (company.Company, error) {
	return company.Company{}, company.ErrNameTaken
}

type memManufacturerRepo struct{}

func (r *memManufacturerRepo) GetPaginated(ctx context.Context, params *manufacturer.FindParams) ([]manufacturer.Manufacturer, int64, error) {
	return nil, 0, nil
}

func (r *memManufacturerRepo) GetByID(ctx context.Context, id uuid.UUID) (manufacturer.Manufacturer, error) {
	return manufacturer.Manufacturer{}, manufacturer.ErrNotFound
}

func (r *memManufacturerRepo) ListForSelect(ctx context.Context) ([]manufacturer.Ref, error) {
	return nil, nil
}

func (r *memManufacturerRepo) Create(ctx context.Context, m manufacturer.Manufacturer) (manufacturer.Manufacturer, error) {
	return manufacturer.Manufacturer{}, manufacturer.ErrNameTaken
}

type memProductRepo struct{}

func (r *memProductRepo) GetPaginated(ctx context.Context, params *product.FindParams) ([]product.Product, int64, error) {
	return nil, 0, nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id uuid.UUID) (product.Product, error) {
	return product.Product{}, product.ErrNotFound
}

func (r *memProductRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	return product.Product{}, product.ErrManufacturerNotFound
}

type memCommissionRepo struct{}

func (r *memCommissionRepo) GetPaginated(ctx context.Context, params *commission.FindParams) ([]commission.Commission, int64, error) {
	return nil, 0, nil
}

func (r *memCommissionRepo) GetByID(ctx context.Context, id uuid.UUID) (commission.Commission, error) {
	return commission.Commission{}, commission.ErrNotFound
}

func (r *memCommissionRepo) Create(ctx context.Context, c commission.Commission) (commission.Commission, error) {
	return commission.Commission{}, commission.ErrCompanyNotFound
}

type memImportLogRepo struct {
	entries []importlog.Entry
}

func (r *memImportLogRepo) Record(ctx context.Context, e importlog.Entry) (uuid.UUID, error) {
	r.entries = append(r.entries, e)
	return uuid.New(), nil
}

func (r *memImportLogRepo) List(ctx context.Context, limit int) ([]importlog.Entry, error) {
	if limit > 0 && limit < len(r.entries) {
		return r.entries[:limit], nil
	}
	return r.entries, nil
}

func newImportFixture() (*ImportService, *memContactRepo, *memImportLogRepo, eventbus.EventBus) {
	contacts := &memContactRepo{}
	logs := &memImportLogRepo{}
	executor := importing.NewExecutor(
		contacts,
		&memCompanyRepo{},
		&memManufacturerRepo{},
		&memProductRepo{},
		&memCommissionRepo{},
	)
	bus := eventbus.NewEventPublisher(logrus.New())
	return NewImportService(executor, logs, bus), contacts, logs, bus
}

func TestImportService_Import_RecordsLogAndPublishesEvent(t *testing.T) {
	svc, contacts, logs, bus := newImportFixture()

	var published []ImportCompletedEvent
	bus.Subscribe(func(event ImportCompletedEvent) {
		published = append(published, event)
	})

	ctx := composables.WithTenantID(context.Background(), uuid.New())
	result, err := svc.Import(ctx, ImportRequest{
		EntityType: importing.EntityContacts,
		FileName:   "contacts.csv",
		Payload:    []byte("First Name,Last Name\nJane,Doe\nJohn,\nAda,Lovelace\n"),
	})
	require.NoError(t, err)

	require.Equal(t, 2, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 3, result.Errors[0].Row)
	require.Len(t, contacts.items, 2)

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	require.Equal(t, "contacts", entry.EntityType())
	require.Equal(t, "contacts.csv", entry.FileName())
	require.Equal(t, 3, entry.TotalRows())
	require.Equal(t, 2, entry.SuccessCount())
	require.Equal(t, 1, entry.ErrorCount())

	var recorded []importing.RowError
	require.NoError(t, json.Unmarshal([]byte(entry.ErrorList()), &recorded))
	require.Len(t, recorded, 1)
	require.Equal(t, 3, recorded[0].Row)

	require.Len(t, published, 1)
	require.Equal(t, importing.EntityContacts, published[0].EntityType)
	require.Equal(t, result, published[0].Result)
}

func TestImportService_Import_CleanRunStoresNoErrorList(t *testing.T) {
	svc, _, logs, _ := newImportFixture()

	ctx := composables.WithTenantID(context.Background(), uuid.New())
	result, err := svc.Import(ctx, ImportRequest{
		EntityType: importing.EntityContacts,
		FileName:   "contacts.csv",
		Payload:    []byte("First Name,Last Name\nJane,Doe\n"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.SuccessCount)

	require.Len(t, logs.entries, 1)
	require.Empty(t, logs.entries[0].ErrorList())
}

func TestImportService_Import_OverlappingHeadersStillProcessRows(t *testing.T) {
	svc, contacts, logs, _ := newImportFixture()

	// Both headers match the phone field; the auto-mapped run must
	// degrade to a single claim instead of refusing the file.
	ctx := composables.WithTenantID(context.Background(), uuid.New())
	result, err := svc.Import(ctx, ImportRequest{
		EntityType: importing.EntityContacts,
		FileName:   "contacts.csv",
		Payload:    []byte("First Name,Last Name,Phone,Telephone\nJane,Doe,555-0100,555-0199\n"),
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.SuccessCount)
	require.Empty(t, result.Errors)
	require.Len(t, contacts.items, 1)
	require.Equal(t, "555-0100", contacts.items[0].Phone())
	require.Len(t, logs.entries, 1)
}

func TestImportService_Import_RefusesFileWithParseErrors(t *testing.T) {
	svc, contacts, logs, _ := newImportFixture()

	ctx := composables.WithTenantID(context.Background(), uuid.New())
	_, err := svc.Import(ctx, ImportRequest{
		EntityType: importing.EntityContacts,
		FileName:   "contacts.csv",
		Payload:    []byte("First Name,First Name\nJane,Doe\n"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate column "First Name"`)
	require.Empty(t, contacts.items)
	require.Empty(t, logs.entries)
}

func TestImportService_Import_RequiresTenant(t *testing.T) {
	svc, _, logs, _ := newImportFixture()

	_, err := svc.Import(context.Background(), ImportRequest{
		EntityType: importing.EntityContacts,
		FileName:   "contacts.csv",
		Payload:    []byte("First Name,Last Name\nJane,Doe\n"),
	})
	require.ErrorIs(t, err, composables.ErrNoTenantID)
	require.Empty(t, logs.entries)
}

func TestImportService_Preview_ReturnsAutoMapping(t *testing.T) {
	svc, _, _, _ := newImportFixture()

	table, mapping, err := svc.Preview(ImportRequest{
		EntityType: importing.EntityContacts,
		FileName:   "contacts.csv",
		Payload:    []byte("First Name,Last Name,Shoe Size\nJane,Doe,38\n"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"First Name", "Last Name", "Shoe Size"}, table.Headers)
	require.Equal(t, "firstName", mapping["First Name"])
	require.Equal(t, "lastName", mapping["Last Name"])
	_, mapped := mapping["Shoe Size"]
	require.False(t, mapped)
}

func TestImportService_History_DelegatesWithLimit(t *testing.T) {
	svc, _, logs, _ := newImportFixture()
	for i := 0; i < 3; i++ {
		logs.entries = append(logs.entries, importlog.New(uuid.New(), "contacts", "a.csv", 1, 1, 0, ""))
	}

	entries, err := svc.History(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
