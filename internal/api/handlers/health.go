package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hugh/scoutzos/internal/api/render"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const checkTimeout = 2 * time.Second

// dependency is one health check. A nil check means the dependency is not
// configured.
type dependency struct {
	name  string
	check func(ctx context.Context) error
}

type HealthHandler struct {
	database dependency
	deps     []dependency
}

// NewHealthHandler accepts a nil redis client when the job queue is
// disabled.
func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	database := dependency{name: "database", check: func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}

	queue := dependency{name: "redis"}
	if rdb != nil {
		queue.check = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}

	return &HealthHandler{database: database, deps: []dependency{database, queue}}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

func runCheck(ctx context.Context, p dependency) string {
	if p.check == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := p.check(ctx); err != nil {
		return "unhealthy"
	}
	return "healthy"
}

// Health reports every dependency; any unhealthy one makes the response 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", Services: make(map[string]string, len(h.deps))}
	for _, p := range h.deps {
		state := runCheck(r.Context(), p)
		resp.Services[p.name] = state
		if state == "unhealthy" {
			resp.Status = "unhealthy"
		}
	}

	status := http.StatusOK
	if resp.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	render.JSON(w, status, resp)
}

// Ready gates traffic on the database alone; redis only carries background
// purges.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if runCheck(r.Context(), h.database) != "healthy" {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
