package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fieldline/fieldline/modules/core/services"
	"github.com/fieldline/fieldline/pkg/application"
	"github.com/fieldline/fieldline/pkg/composables"
)

// RequireTenant resolves the tenant for the request and puts its id
// into the context. An authenticated session's tenant wins; otherwise
// the request host is looked up against registered tenant domains.
// Requests that resolve to no tenant get a 404, never a default
// tenant.
func RequireTenant(app application.Application) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session, ok := composables.UseSession(r.Context()); ok {
				next.ServeHTTP(w, r.WithContext(composables.WithTenantID(r.Context(), session.TenantID)))
				return
			}

			host := normalizeHost(r.Host)
			if host == "" {
				http.NotFound(w, r)
				return
			}

			tenantService := app.Service(services.TenantService{}).(*services.TenantService)
			t, err := tenantService.GetByDomain(r.Context(), host)
			if err != nil {
				if logger, ok := composables.TryUseLogger(r.Context()); ok {
					logger.WithField("host", host).WithError(err).Warn("tenant not found for host")
				}
				http.NotFound(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(composables.WithTenantID(r.Context(), t.ID())))
		})
	}
}

func normalizeHost(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(raw); err == nil {
		return strings.TrimSpace(h)
	}
	return raw
}
