package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fieldline/fieldline/pkg/composables"
)

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

// Status returns the HTTP status code
func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func (w *responseCaptureWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *responseCaptureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

func getRequestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-Id"); id != "" {
		return id
	}
	return uuid.New().String()
}

// WithLogger attaches a per-request field logger to the context, logs
// request start and completion, and recovers panics from the handler
// chain so a single bad request cannot take the process down.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := getRequestID(r)

			fieldsLogger := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"path":       r.RequestURI,
				"method":     r.Method,
			})

			fieldsLogger.WithFields(logrus.Fields{
				"host":       r.Host,
				"ip":         r.RemoteAddr,
				"user-agent": r.UserAgent(),
			}).Info("request started")

			w.Header().Set("X-Request-Id", requestID)
			wrapped := &responseCaptureWriter{ResponseWriter: w}

			defer func() {
				if recovered := recover(); recovered != nil {
					fieldsLogger.WithFields(logrus.Fields{
						"panic":  recovered,
						"stack":  string(debug.Stack()),
						"status": http.StatusInternalServerError,
					}).Error("panic recovered in request handler")

					if !wrapped.statusWritten {
						http.Error(wrapped, "Internal Server Error", http.StatusInternalServerError)
					}
				}
			}()

			ctx := composables.WithLogger(r.Context(), fieldsLogger)
			ctx = composables.WithParams(ctx, &composables.Params{
				IP:        r.RemoteAddr,
				UserAgent: r.UserAgent(),
				Request:   r,
				Writer:    wrapped,
			})
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			fieldsLogger.WithFields(logrus.Fields{
				"duration":    time.Since(start),
				"status-code": wrapped.Status(),
			}).Info("request completed")
		})
	}
}
