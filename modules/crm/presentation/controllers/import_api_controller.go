package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fieldline/fieldline/modules/crm/importing"
	"github.com/fieldline/fieldline/modules/crm/presentation/controllers/dtos"
	"github.com/fieldline/fieldline/modules/crm/services"
	"github.com/fieldline/fieldline/pkg/application"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/configuration"
)

// ImportAPIController handles bulk file imports. Import runs never
// open an enclosing transaction: each row commits on its own so one
// failed row cannot poison the rest of the run.
type ImportAPIController struct {
	app      application.Application
	imports  *services.ImportService
	basePath string
}

func NewImportAPIController(app application.Application) application.Controller {
	return &ImportAPIController{
		app:      app,
		imports:  app.Service(services.ImportService{}).(*services.ImportService),
		basePath: "/crm/api/imports",
	}
}

func (c *ImportAPIController) Key() string {
	return c.basePath
}

func (c *ImportAPIController) Register(r *mux.Router) {
	router := r.PathPrefix("/crm/api").Subrouter()
	router.HandleFunc("/imports", c.Run).Methods(http.MethodPost)
	router.HandleFunc("/imports", c.History).Methods(http.MethodGet)
	router.HandleFunc("/imports:preview", c.Preview).Methods(http.MethodPost)
	router.HandleFunc("/imports:fields", c.Fields).Methods(http.MethodGet)
}

// Fields returns the importable target fields for an entity type, so
// a client can build a mapping UI.
func (c *ImportAPIController) Fields(w http.ResponseWriter, r *http.Request) {
	entityType, err := importing.ParseEntityType(r.URL.Query().Get("type"))
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_INVALID_TYPE", err.Error())
		return
	}
	fields := importing.TargetFields(entityType)
	out := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]any{
			"key":      field.Key,
			"label":    field.Label,
			"required": field.Required,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": out})
}

// Preview parses the uploaded file without creating anything and
// returns its headers, the automatic column mapping and any structural
// parse errors.
func (c *ImportAPIController) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := c.parseUpload(w, r)
	if !ok {
		return
	}
	table, mapping, err := c.imports.Preview(req)
	if err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "IMPORT_UNREADABLE_FILE", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"headers": table.Headers,
		"rows":    len(table.Rows),
		"mapping": mapping,
		"errors":  table.Errors,
	})
}

// Run executes a full import and returns the per-row outcome.
func (c *ImportAPIController) Run(w http.ResponseWriter, r *http.Request) {
	req, ok := c.parseUpload(w, r)
	if !ok {
		return
	}

	result, err := c.imports.Import(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, composables.ErrNoTenantID):
			writeAPIError(w, r, http.StatusUnauthorized, "IMPORT_NO_TENANT", "tenant not resolved")
		default:
			writeAPIError(w, r, http.StatusUnprocessableEntity, "IMPORT_REJECTED", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// History returns the most recent import runs for the tenant.
func (c *ImportAPIController) History(w http.ResponseWriter, r *http.Request) {
	entries, err := c.imports.History(r.Context(), configuration.Use().ImportLogLimit)
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "IMPORT_INTERNAL", "internal error")
		return
	}
	out := make([]dtos.ImportLogView, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dtos.FromImportLog(entry))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

// parseUpload reads the multipart form shared by Preview and Run:
// file (required), type (required), mapping and overrides (optional
// JSON objects). Reports the error itself and returns ok=false.
func (c *ImportAPIController) parseUpload(w http.ResponseWriter, r *http.Request) (services.ImportRequest, bool) {
	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize)
	if err := r.ParseMultipartForm(conf.MaxUploadMemory); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_INVALID_FORM", "invalid multipart form")
		return services.ImportRequest{}, false
	}

	entityType, err := importing.ParseEntityType(r.FormValue("type"))
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_INVALID_TYPE", err.Error())
		return services.ImportRequest{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_MISSING_FILE", "file is required")
		return services.ImportRequest{}, false
	}
	defer func() {
		_ = file.Close()
	}()

	payload, err := io.ReadAll(file)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_UNREADABLE_FILE", "failed to read file")
		return services.ImportRequest{}, false
	}

	var mapping importing.FieldMapping
	if raw := strings.TrimSpace(r.FormValue("mapping")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "IMPORT_INVALID_MAPPING", "mapping must be a JSON object of column to field")
			return services.ImportRequest{}, false
		}
	}

	var overrides importing.Overrides
	if raw := strings.TrimSpace(r.FormValue("overrides")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "IMPORT_INVALID_OVERRIDES", "overrides must be a JSON object of name to id")
			return services.ImportRequest{}, false
		}
	}

	return services.ImportRequest{
		EntityType: entityType,
		FileName:   header.Filename,
		Payload:    payload,
		Mapping:    mapping,
		Overrides:  overrides,
	}, true
}
