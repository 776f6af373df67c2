package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/hugh/scoutzos/internal/api/render"
	"github.com/hugh/scoutzos/internal/apperr"
)

// Recovery turns a panicking handler into a 500 response.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				render.Error(w, r, nil, apperr.Storage("complete request", nil))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
