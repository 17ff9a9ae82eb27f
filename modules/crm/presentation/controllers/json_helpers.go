package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/modules/crm/presentation/controllers/dtos"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		panic(err)
	}
}

func ensureRequestID(w http.ResponseWriter, r *http.Request) string {
	if r == nil {
		return ""
	}
	requestID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
	if requestID == "" {
		requestID = uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
	}
	return requestID
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	writeJSON(w, status, dtos.APIError{
		Code:    code,
		Message: message,
		Meta: map[string]string{
			"request_id": ensureRequestID(w, r),
		},
	})
}

// firstValidationMessage flattens a validation map to one stable
// message for the API error body; field order is not guaranteed so the
// lexically first field wins.
func firstValidationMessage(errs map[string]string) string {
	message := "validation failed"
	first := ""
	for field, v := range errs {
		if first == "" || field < first {
			if strings.TrimSpace(v) != "" {
				first = field
				message = v
			}
		}
	}
	return message
}
