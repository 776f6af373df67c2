package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hugh/scoutzos/internal/api/handlers"
	"github.com/hugh/scoutzos/internal/api/middleware"
	"github.com/hugh/scoutzos/internal/audit"
	"github.com/hugh/scoutzos/internal/auth"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/metrics"
	"github.com/hugh/scoutzos/internal/orgs"
	"github.com/hugh/scoutzos/internal/repository"
	"github.com/hugh/scoutzos/internal/schema"
	"github.com/hugh/scoutzos/internal/storage"
	"github.com/hugh/scoutzos/internal/tasks"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     auth.TokenService
	Store          storage.ObjectStore // nil disables downloads
	Enqueuer       tasks.Enqueuer      // nil disables blob purges
	Metrics        *metrics.HTTPMetrics
	DownloadExpiry time.Duration
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.TenantHeader, middleware.RequestIDHeader},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	recorder := audit.NewRecorder(logger)
	orgService := orgs.NewService(cfg.DB, recorder, logger)

	documents := repository.New[models.Document](cfg.DB, schema.Document, recorder, logger,
		repository.WithAfterDelete[models.Document](func(ctx context.Context, tenant string, doc *models.Document) {
			tasks.EnqueueDocumentPurge(ctx, cfg.Enqueuer, logger, doc)
		}),
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	orgHandler := handlers.NewOrganizationHandler(orgService, logger)
	auditHandler := handlers.NewAuditHandler(cfg.DB, logger)
	documentHandler := handlers.NewDocumentHandler(documents, cfg.Store, cfg.DownloadExpiry, logger)

	resources := map[string]func(chi.Router){
		"/owners":     resource[models.Owner](cfg.DB, schema.Owner, recorder, logger).Routes,
		"/properties": resource[models.Property](cfg.DB, schema.Property, recorder, logger).Routes,
		"/units":      resource[models.Unit](cfg.DB, schema.Unit, recorder, logger).Routes,
		"/leads":      resource[models.Lead](cfg.DB, schema.Lead, recorder, logger).Routes,
		"/deals":      resource[models.Deal](cfg.DB, schema.Deal, recorder, logger).Routes,
		"/contacts":   resource[models.Contact](cfg.DB, schema.Contact, recorder, logger).Routes,
		"/tasks":      resource[models.Task](cfg.DB, schema.Task, recorder, logger).Routes,
	}
	documentRoutes := handlers.NewResourceHandler(documents, logger).Routes

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(cfg.JWTService))
		// Authenticated callers get their own budget across addresses
		if cfg.RateLimitReqs > 0 {
			r.Use(middleware.RateLimitByUser(cfg.RateLimitReqs, cfg.RateLimitSecs))
		}

		// Organizations and users are not tenant scoped
		r.Route("/orgs", func(r chi.Router) {
			r.Get("/", orgHandler.List)
			r.Post("/", orgHandler.Create)
			r.Get("/{id}", orgHandler.Get)
			r.Get("/{id}/members", orgHandler.ListMembers)
			r.Post("/{id}/members", orgHandler.AddMember)
		})
		r.Route("/users", func(r chi.Router) {
			r.Post("/", orgHandler.CreateUser)
			r.Get("/{id}", orgHandler.GetUser)
		})

		// Tenant-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTenant)

			for path, routes := range resources {
				r.Route(path, routes)
			}
			r.Route("/documents", func(r chi.Router) {
				documentRoutes(r)
				r.Get("/{id}/download", documentHandler.Download)
			})

			r.Get("/audit", auditHandler.List)
		})
	})

	return &Router{r}
}

func resource[T any](db *gorm.DB, desc *schema.Descriptor, recorder *audit.Recorder, logger *slog.Logger) *handlers.ResourceHandler[T] {
	return handlers.NewResourceHandler(repository.New[T](db, desc, recorder, logger), logger)
}
