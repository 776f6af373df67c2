package handlers_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/scoutzos/internal/api/dto"
	"github.com/hugh/scoutzos/internal/api/handlers"
	"github.com/hugh/scoutzos/internal/api/middleware"
	"github.com/hugh/scoutzos/internal/audit"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/orgs"
	"github.com/hugh/scoutzos/internal/repository"
	"github.com/hugh/scoutzos/internal/schema"
	"github.com/hugh/scoutzos/internal/storage"
	"github.com/hugh/scoutzos/internal/testutil"
	"github.com/stretchr/testify/assert"
)

type testEnv struct {
	*testutil.TestSetup
	Router *chi.Mux
	Store  *storage.MemoryStore
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEnv wires the handlers the way the router does, without the global
// middleware. withStore attaches an in-memory object store.
func newTestEnv(t *testing.T, withStore bool) *testEnv {
	t.Helper()

	tc := testutil.NewTestContext(t)
	logger := quietLogger()
	recorder := audit.NewRecorder(logger)

	env := &testEnv{TestSetup: tc}
	var store storage.ObjectStore
	if withStore {
		env.Store = storage.NewMemoryStore("http://blobs.test")
		store = env.Store
	}

	owners := handlers.NewResourceHandler(repository.New[models.Owner](tc.DB, schema.Owner, recorder, logger), logger)
	properties := handlers.NewResourceHandler(repository.New[models.Property](tc.DB, schema.Property, recorder, logger), logger)
	units := handlers.NewResourceHandler(repository.New[models.Unit](tc.DB, schema.Unit, recorder, logger), logger)
	docRepo := repository.New[models.Document](tc.DB, schema.Document, recorder, logger)
	documents := handlers.NewResourceHandler(docRepo, logger)
	downloads := handlers.NewDocumentHandler(docRepo, store, 10*time.Minute, logger)
	orgHandler := handlers.NewOrganizationHandler(orgs.NewService(tc.DB, recorder, logger), logger)
	auditHandler := handlers.NewAuditHandler(tc.DB, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(tc.JWTService))

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

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTenant)
			r.Route("/owners", owners.Routes)
			r.Route("/properties", properties.Routes)
			r.Route("/units", units.Routes)
			r.Route("/documents", func(r chi.Router) {
				documents.Routes(r)
				r.Get("/{id}/download", downloads.Download)
			})
			r.Get("/audit", auditHandler.List)
		})
	})

	env.Router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, orgID string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.TenantRequest(t, method, path, body, orgID, "")
	rr := httptest.NewRecorder()
	e.Router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) doAs(t *testing.T, method, path string, body interface{}, orgID, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.TenantRequest(t, method, path, body, orgID, token)
	rr := httptest.NewRecorder()
	e.Router.ServeHTTP(rr, req)
	return rr
}

func assertErrorKind(t *testing.T, rr *httptest.ResponseRecorder, status int, kind string) dto.ErrorResponse {
	t.Helper()
	testutil.AssertStatus(t, rr, status)
	var resp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Equal(t, kind, resp.Kind)
	assert.NotEmpty(t, resp.Error)
	return resp
}
