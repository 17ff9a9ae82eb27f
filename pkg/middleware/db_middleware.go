package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fieldline/fieldline/pkg/composables"
)

// ProvidePool makes the connection pool available to everything below.
// Transactions are not opened here: services that need one call
// composables.InTenantTx, and import rows run against the pool
// directly so a failed row cannot poison the statements after it.
func ProvidePool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}
