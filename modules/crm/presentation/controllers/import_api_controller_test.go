package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline/modules/crm/importing"
	"github.com/fieldline/fieldline/modules/crm/services"
	"github.com/fieldline/fieldline/pkg/application"
	"github.com/fieldline/fieldline/pkg/eventbus"
)

func newImportRouter(t *testing.T) *mux.Router {
	t.Helper()
	logger := logrus.New()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	// The routes under test stop before any repository call, so the
	// executor needs no storage behind it.
	app.RegisterServices(
		services.NewImportService(importing.NewExecutor(nil, nil, nil, nil, nil), nil, app.EventPublisher()),
	)

	router := mux.NewRouter()
	NewImportAPIController(app).Register(router)
	return router
}

func multipartUpload(t *testing.T, fields map[string]string, fileName string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportAPI_Fields(t *testing.T) {
	router := newImportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/crm/api/imports:fields?type=products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Fields []struct {
			Key      string `json:"key"`
			Label    string `json:"label"`
			Required bool   `json:"required"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Fields, 4)
	require.Equal(t, "name", payload.Fields[0].Key)
	require.True(t, payload.Fields[0].Required)
	require.Equal(t, "manufacturerName", payload.Fields[3].Key)
	require.True(t, payload.Fields[3].Required)
}

func TestImportAPI_Fields_InvalidType(t *testing.T) {
	router := newImportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/crm/api/imports:fields?type=unicorns", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "IMPORT_INVALID_TYPE")
}

func TestImportAPI_Preview(t *testing.T) {
	router := newImportRouter(t)
	body, contentType := multipartUpload(t,
		map[string]string{"type": "contacts"},
		"contacts.csv",
		[]byte("First Name,Last Name\nJane,Doe\n"),
	)

	req := httptest.NewRequest(http.MethodPost, "/crm/api/imports:preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Headers []string          `json:"headers"`
		Rows    int               `json:"rows"`
		Mapping map[string]string `json:"mapping"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, []string{"First Name", "Last Name"}, payload.Headers)
	require.Equal(t, 1, payload.Rows)
	require.Equal(t, "firstName", payload.Mapping["First Name"])
}

func TestImportAPI_Run_MissingFile(t *testing.T) {
	router := newImportRouter(t)
	body, contentType := multipartUpload(t, map[string]string{"type": "contacts"}, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/crm/api/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "IMPORT_MISSING_FILE")
}

func TestImportAPI_Run_InvalidMappingJSON(t *testing.T) {
	router := newImportRouter(t)
	body, contentType := multipartUpload(t,
		map[string]string{"type": "contacts", "mapping": "not json"},
		"contacts.csv",
		[]byte("First Name,Last Name\nJane,Doe\n"),
	)

	req := httptest.NewRequest(http.MethodPost, "/crm/api/imports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "IMPORT_INVALID_MAPPING")
}
