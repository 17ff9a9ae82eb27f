package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/commission"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/company"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/contact"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/manufacturer"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/product"
	"github.com/fieldline/fieldline/modules/crm/presentation/controllers/dtos"
	"github.com/fieldline/fieldline/modules/crm/services"
	"github.com/fieldline/fieldline/pkg/application"
	"github.com/fieldline/fieldline/pkg/configuration"
)

// CRMAPIController exposes the tenant's business records: contacts,
// companies, manufacturers, products and commissions.
type CRMAPIController struct {
	app           application.Application
	contacts      *services.ContactService
	companies     *services.CompanyService
	manufacturers *services.ManufacturerService
	products      *services.ProductService
	commissions   *services.CommissionService
	basePath      string
}

func NewCRMAPIController(app application.Application) application.Controller {
	return &CRMAPIController{
		app:           app,
		contacts:      app.Service(services.ContactService{}).(*services.ContactService),
		companies:     app.Service(services.CompanyService{}).(*services.CompanyService),
		manufacturers: app.Service(services.ManufacturerService{}).(*services.ManufacturerService),
		products:      app.Service(services.ProductService{}).(*services.ProductService),
		commissions:   app.Service(services.CommissionService{}).(*services.CommissionService),
		basePath:      "/crm/api",
	}
}

func (c *CRMAPIController) Key() string {
	return c.basePath
}

func (c *CRMAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/contacts", c.ListContacts).Methods(http.MethodGet)
	router.HandleFunc("/companies", c.ListCompanies).Methods(http.MethodGet)
	router.HandleFunc("/companies:options", c.CompanyOptions).Methods(http.MethodGet)
	router.HandleFunc("/manufacturers", c.ListManufacturers).Methods(http.MethodGet)
	router.HandleFunc("/manufacturers:options", c.ManufacturerOptions).Methods(http.MethodGet)
	router.HandleFunc("/products", c.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/commissions", c.ListCommissions).Methods(http.MethodGet)

	router.HandleFunc("/contacts", c.CreateContact).Methods(http.MethodPost)
	router.HandleFunc("/companies", c.CreateCompany).Methods(http.MethodPost)
	router.HandleFunc("/manufacturers", c.CreateManufacturer).Methods(http.MethodPost)
	router.HandleFunc("/products", c.CreateProduct).Methods(http.MethodPost)
	router.HandleFunc("/commissions", c.CreateCommission).Methods(http.MethodPost)
}

func paging(r *http.Request) (q string, limit, offset int) {
	conf := configuration.Use()
	limit = conf.PageSize
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= conf.MaxPageSize {
			limit = parsed
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("q")), limit, offset
}

func (c *CRMAPIController) ListContacts(w http.ResponseWriter, r *http.Request) {
	q, limit, offset := paging(r)
	items, total, err := c.contacts.GetPaginated(r.Context(), &contact.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	out := make([]dtos.ContactView, 0, len(items))
	for _, item := range items {
		out = append(out, dtos.FromContact(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *CRMAPIController) CreateContact(w http.ResponseWriter, r *http.Request) {
	var dto contact.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "CRM_VALIDATION_FAILED", firstValidationMessage(errs))
		return
	}
	created, err := c.contacts.Create(r.Context(), &dto)
	if err != nil {
		if errors.Is(err, contact.ErrCompanyNotFound) {
			writeAPIError(w, r, http.StatusUnprocessableEntity, "CRM_COMPANY_NOT_FOUND", "referenced company not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, dtos.FromContact(created))
}

func (c *CRMAPIController) ListCompanies(w http.ResponseWriter, r *http.Request) {
	q, limit, offset := paging(r)
	items, total, err := c.companies.GetPaginated(r.Context(), &company.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	out := make([]dtos.CompanyView, 0, len(items))
	for _, item := range items {
		out = append(out, dtos.FromCompany(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *CRMAPIController) CompanyOptions(w http.ResponseWriter, r *http.Request) {
	refs, err := c.companies.ListForSelect(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	out := make([]map[string]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, map[string]string{"id": ref.ID.String(), "name": ref.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *CRMAPIController) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var dto company.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "CRM_VALIDATION_FAILED", firstValidationMessage(errs))
		return
	}
	created, err := c.companies.Create(r.Context(), &dto)
	if err != nil {
		if errors.Is(err, company.ErrNameTaken) {
			writeAPIError(w, r, http.StatusConflict, "CRM_NAME_CONFLICT", "company name already exists")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, dtos.FromCompany(created))
}

func (c *CRMAPIController) ListManufacturers(w http.ResponseWriter, r *http.Request) {
	q, limit, offset := paging(r)
	items, total, err := c.manufacturers.GetPaginated(r.Context(), &manufacturer.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	out := make([]dtos.ManufacturerView, 0, len(items))
	for _, item := range items {
		out = append(out, dtos.FromManufacturer(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *CRMAPIController) ManufacturerOptions(w http.ResponseWriter, r *http.Request) {
	refs, err := c.manufacturers.ListForSelect(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	out := make([]map[string]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, map[string]string{"id": ref.ID.String(), "name": ref.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *CRMAPIController) CreateManufacturer(w http.ResponseWriter, r *http.Request) {
	var dto manufacturer.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "CRM_VALIDATION_FAILED", firstValidationMessage(errs))
		return
	}
	created, err := c.manufacturers.Create(r.Context(), &dto)
	if err != nil {
		if errors.Is(err, manufacturer.ErrNameTaken) {
			writeAPIError(w, r, http.StatusConflict, "CRM_NAME_CONFLICT", "manufacturer name already exists")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, dtos.FromManufacturer(created))
}

func (c *CRMAPIController) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, limit, offset := paging(r)
	items, total, err := c.products.GetPaginated(r.Context(), &product.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	out := make([]dtos.ProductView, 0, len(items))
	for _, item := range items {
		out = append(out, dtos.FromProduct(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *CRMAPIController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto product.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "CRM_VALIDATION_FAILED", firstValidationMessage(errs))
		return
	}
	created, err := c.products.Create(r.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrManufacturerNotFound):
			writeAPIError(w, r, http.StatusUnprocessableEntity, "CRM_MANUFACTURER_NOT_FOUND", "referenced manufacturer not found")
		case errors.Is(err, product.ErrSKUTaken):
			writeAPIError(w, r, http.StatusConflict, "CRM_SKU_CONFLICT", "sku already exists")
		default:
			writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, dtos.FromProduct(created))
}

func (c *CRMAPIController) ListCommissions(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := paging(r)
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	items, total, err := c.commissions.GetPaginated(r.Context(), &commission.FindParams{Period: period, Limit: limit, Offset: offset})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	out := make([]dtos.CommissionView, 0, len(items))
	for _, item := range items {
		out = append(out, dtos.FromCommission(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": total})
}

func (c *CRMAPIController) CreateCommission(w http.ResponseWriter, r *http.Request) {
	var dto commission.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CRM_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "CRM_VALIDATION_FAILED", firstValidationMessage(errs))
		return
	}
	created, err := c.commissions.Create(r.Context(), &dto)
	if err != nil {
		if errors.Is(err, commission.ErrCompanyNotFound) {
			writeAPIError(w, r, http.StatusUnprocessableEntity, "CRM_COMPANY_NOT_FOUND", "referenced company not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, dtos.FromCommission(created))
}
