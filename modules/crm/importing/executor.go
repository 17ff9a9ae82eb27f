package importing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/commission"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/company"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/contact"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/manufacturer"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/product"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/tabular"
)

// Executor drives one import run: it walks the rows strictly in file
// order, builds a candidate record per row through the field mapping,
// resolves name references through run-scoped caches, and creates
// records through the tenant-scoped repositories. Row failures are
// collected, never raised; the repositories remain the authoritative
// tenant boundary.
type Executor struct {
	contacts      contact.Repository
	companies     company.Repository
	manufacturers manufacturer.Repository
	products      product.Repository
	commissions   commission.Repository
}

func NewExecutor(
	contacts contact.Repository,
	companies company.Repository,
	manufacturers manufacturer.Repository,
	products product.Repository,
	commissions commission.Repository,
) *Executor {
	return &Executor{
		contacts:      contacts,
		companies:     companies,
		manufacturers: manufacturers,
		products:      products,
		commissions:   commissions,
	}
}

// runState carries the per-run mutable pieces. Rows are processed
// sequentially because ResolveOrCreate mutates the manufacturer cache;
// concurrent rows sharing a new name would race and create duplicates.
type runState struct {
	entityType    EntityType
	mapping       FieldMapping
	overrides     Overrides
	companies     *ResolutionCache
	manufacturers *ResolutionCache
}

// Run executes one import run. Fatal conditions (unresolvable tenant,
// invalid mapping, cache seeding failure) return an error before any
// row is processed; after that every failure is a row outcome.
func (e *Executor) Run(
	ctx context.Context,
	entityType EntityType,
	rows []tabular.Row,
	mapping FieldMapping,
	overrides Overrides,
) (Result, error) {
	if _, err := composables.UseTenantID(ctx); err != nil {
		return Result{}, err
	}
	if err := mapping.Validate(entityType); err != nil {
		return Result{}, err
	}

	state := &runState{
		entityType: entityType,
		mapping:    mapping,
		overrides:  overrides,
	}
	if err := e.seedCaches(ctx, state); err != nil {
		return Result{}, err
	}

	result := Result{Errors: []RowError{}}
	for _, row := range rows {
		if _, err := e.processRow(ctx, state, row); err != nil {
			result.Errors = append(result.Errors, RowError{
				Row:   row.Position,
				Error: err.Error(),
				Data:  row.Values,
			})
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

// seedCaches loads the tenant's existing referenced entities once per
// run, so rows sharing a name not yet in the cache cannot create
// duplicates.
func (e *Executor) seedCaches(ctx context.Context, state *runState) error {
	switch state.entityType {
	case EntityContacts, EntityCommissions:
		refs, err := e.companies.ListForSelect(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed company cache: %w", err)
		}
		state.companies = NewResolutionCache()
		for _, ref := range refs {
			state.companies.Seed(ref.Name, ref.ID)
		}
	case EntityProducts:
		refs, err := e.manufacturers.ListForSelect(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed manufacturer cache: %w", err)
		}
		state.manufacturers = NewResolutionCache()
		for _, ref := range refs {
			state.manufacturers.Seed(ref.Name, ref.ID)
		}
	}
	return nil
}

// knownRowErrors are surfaced to the caller verbatim; anything else
// coming out of storage is reported with a generic message so one bad
// row can never leak internals or abort the batch.
var knownRowErrors = []error{
	contact.ErrCompanyNotFound,
	commission.ErrCompanyNotFound,
	product.ErrManufacturerNotFound,
	company.ErrNameTaken,
	manufacturer.ErrNameTaken,
	product.ErrSKUTaken,
}

func (e *Executor) processRow(ctx context.Context, state *runState, row tabular.Row) (id uuid.UUID, err error) {
	defer func() {
		if r := recover(); r != nil {
			id = uuid.Nil
			err = errors.New("unexpected error, record not created")
		}
	}()

	if e.rowIsEmpty(state, row) {
		return uuid.Nil, errors.New("empty row")
	}

	id, err = e.createFromRow(ctx, state, row)
	if err != nil {
		return uuid.Nil, e.asRowError(err)
	}
	return id, nil
}

func (e *Executor) asRowError(err error) error {
	var rowErr *rowError
	if errors.As(err, &rowErr) {
		return err
	}
	for _, known := range knownRowErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return errors.New("unexpected error, record not created")
}

func (e *Executor) createFromRow(ctx context.Context, state *runState, row tabular.Row) (uuid.UUID, error) {
	switch state.entityType {
	case EntityContacts:
		return e.importContact(ctx, state, row)
	case EntityCompanies:
		return e.importCompany(ctx, state, row)
	case EntityManufacturers:
		return e.importManufacturer(ctx, state, row)
	case EntityProducts:
		return e.importProduct(ctx, state, row)
	case EntityCommissions:
		return e.importCommission(ctx, state, row)
	default:
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidImportType, state.entityType)
	}
}

func (e *Executor) importContact(ctx context.Context, state *runState, row tabular.Row) (uuid.UUID, error) {
	dto := &contact.CreateDTO{
		FirstName: e.value(state, row, "firstName"),
		LastName:  e.value(state, row, "lastName"),
		Email:     e.value(state, row, "email"),
		Phone:     e.value(state, row, "phone"),
		Title:     e.value(state, row, "title"),
	}
	if msgs, ok := dto.Ok(); !ok {
		return uuid.Nil, validationError(msgs)
	}

	entity := dto.ToEntity(uuid.Nil)
	// The company reference is optional: an unresolvable name is
	// omitted, not a failure.
	if name := e.value(state, row, "companyName"); name != "" {
		if companyID, err := state.companies.ResolveStrict(name, state.overrides); err == nil {
			entity = entity.WithCompanyID(companyID)
		}
	}

	created, err := e.contacts.Create(ctx, entity)
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID(), nil
}

func (e *Executor) importCompany(ctx context.Context, state *runState, row tabular.Row) (uuid.UUID, error) {
	dto := &company.CreateDTO{
		Name:     e.value(state, row, "name"),
		Website:  e.value(state, row, "website"),
		Industry: e.value(state, row, "industry"),
		City:     e.value(state, row, "city"),
	}
	if msgs, ok := dto.Ok(); !ok {
		return uuid.Nil, validationError(msgs)
	}

	created, err := e.companies.Create(ctx, dto.ToEntity(uuid.Nil))
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID(), nil
}

func (e *Executor) importManufacturer(ctx context.Context, state *runState, row tabular.Row) (uuid.UUID, error) {
	dto := &manufacturer.CreateDTO{
		Name: e.value(state, row, "name"),
	}
	if msgs, ok := dto.Ok(); !ok {
		return uuid.Nil, validationError(msgs)
	}

	created, err := e.manufacturers.Create(ctx, dto.ToEntity(uuid.Nil))
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID(), nil
}

func (e *Executor) importProduct(ctx context.Context, state *runState, row tabular.Row) (uuid.UUID, error) {
	manufacturerName := e.value(state, row, "manufacturerName")
	if manufacturerName == "" {
		return uuid.Nil, newRowError("Manufacturer Name is required")
	}

	manufacturerID, err := state.manufacturers.ResolveOrCreate(ctx, manufacturerName,
		func(ctx context.Context, name string) (uuid.UUID, error) {
			created, err := e.manufacturers.Create(ctx, manufacturer.New(uuid.Nil, name))
			if err != nil {
				return uuid.Nil, err
			}
			return created.ID(), nil
		})
	if err != nil {
		return uuid.Nil, err
	}

	dto := &product.CreateDTO{
		Name:           e.value(state, row, "name"),
		SKU:            e.value(state, row, "sku"),
		Price:          e.value(state, row, "price"),
		ManufacturerID: manufacturerID.String(),
	}
	if msgs, ok := dto.Ok(); !ok {
		return uuid.Nil, validationError(msgs)
	}

	entity, err := dto.ToEntity(uuid.Nil)
	if err != nil {
		return uuid.Nil, newRowError("Price must be a number")
	}

	created, err := e.products.Create(ctx, entity)
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID(), nil
}

func (e *Executor) importCommission(ctx context.Context, state *runState, row tabular.Row) (uuid.UUID, error) {
	companyName := e.value(state, row, "companyName")
	if companyName == "" {
		return uuid.Nil, newRowError("Company Name is required")
	}

	companyID, err := state.companies.ResolveStrict(companyName, state.overrides)
	if err != nil {
		return uuid.Nil, newRowError(fmt.Sprintf("Company %q not found and not resolved", strings.TrimSpace(companyName)))
	}

	dto := &commission.CreateDTO{
		CompanyID: companyID.String(),
		Amount:    e.value(state, row, "amount"),
		Rate:      e.value(state, row, "rate"),
		Period:    e.value(state, row, "period"),
		Notes:     e.value(state, row, "notes"),
	}
	if msgs, ok := dto.Ok(); !ok {
		return uuid.Nil, validationError(msgs)
	}

	entity, err := dto.ToEntity(uuid.Nil)
	if err != nil {
		return uuid.Nil, newRowError("Amount and Rate must be numbers")
	}

	created, err := e.commissions.Create(ctx, entity)
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID(), nil
}

// value reads the field's raw value from the row through the mapping.
// Unmapped or skipped fields yield "", never a failure by themselves.
func (e *Executor) value(state *runState, row tabular.Row, fieldKey string) string {
	column := state.mapping.columnFor(fieldKey)
	if column == "" {
		return ""
	}
	return row.Get(column)
}

func (e *Executor) rowIsEmpty(state *runState, row tabular.Row) bool {
	for column, target := range state.mapping {
		if target == "" {
			continue
		}
		if row.Get(column) != "" {
			return false
		}
	}
	return true
}

// rowError marks messages meant for the caller verbatim.
type rowError struct {
	message string
}

func (e *rowError) Error() string { return e.message }

func newRowError(message string) error {
	return &rowError{message: message}
}

func validationError(messages map[string]string) error {
	fields := make([]string, 0, len(messages))
	for field := range messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, messages[field])
	}
	return newRowError(strings.Join(parts, "; "))
}
