// Package render writes JSON responses and maps errors to status codes.
package render

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hugh/scoutzos/internal/api/dto"
	"github.com/hugh/scoutzos/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes err as an ErrorResponse. Causes of server-side failures are
// logged and never rendered.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	e := apperr.As(err)
	status := e.Kind.HTTPStatus()

	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", e.Kind,
			"error", err,
		)
	}

	JSON(w, status, dto.ErrorResponse{
		Error:   e.Message,
		Kind:    string(e.Kind),
		Details: e.Fields,
	})
}
