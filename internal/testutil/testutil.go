package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hugh/scoutzos/internal/api/middleware"
	"github.com/hugh/scoutzos/internal/auth"
	"github.com/hugh/scoutzos/internal/database"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/ids"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates a migrated in-memory SQLite database. The pool is
// pinned to one connection since every new :memory: connection would open
// an empty database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// CreateTestOrg creates an organization with a unique slug
func CreateTestOrg(t *testing.T, db *gorm.DB) *models.Organization {
	t.Helper()

	id := ids.New()
	org := &models.Organization{
		Base: models.Base{ID: id},
		Name: "Test Organization",
		Slug: "test-org-" + strings.ToLower(id),
	}

	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organization: %v", err)
	}

	return org
}

// CreateTestUser creates a user who owns org
func CreateTestUser(t *testing.T, db *gorm.DB, org *models.Organization) *models.User {
	t.Helper()

	name := "Test User"
	user := &models.User{
		Email: "test-" + strings.ToLower(ids.New()) + "@example.com",
		Name:  &name,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	membership := &models.UserOrgRole{
		UserID: user.ID,
		OrgID:  org.ID,
		Role:   models.RoleOwner,
	}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("failed to create test membership: %v", err)
	}

	return user
}

// CreateTestOwner inserts an owner directly, bypassing the audit log.
func CreateTestOwner(t *testing.T, db *gorm.DB, orgID, legalName string) *models.Owner {
	t.Helper()

	owner := &models.Owner{
		Tenant:    models.Tenant{OrgID: orgID},
		LegalName: legalName,
	}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("failed to create test owner: %v", err)
	}

	return owner
}

// CreateTestProperty inserts an active property owned by ownerID (may be empty).
func CreateTestProperty(t *testing.T, db *gorm.DB, orgID, ownerID string) *models.Property {
	t.Helper()

	prop := &models.Property{
		Tenant:     models.Tenant{OrgID: orgID},
		Address1:   "100 Test Ave",
		City:       "Austin",
		State:      "TX",
		PostalCode: "78701",
		Type:       models.PropertyTypeSingleFamily,
		Status:     models.PropertyStatusActive,
	}
	if ownerID != "" {
		prop.OwnerID = &ownerID
	}
	if err := db.Create(prop).Error; err != nil {
		t.Fatalf("failed to create test property: %v", err)
	}

	return prop
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", "scoutzos-test", 24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// TenantRequest creates a JSON request scoped to orgID. Empty orgID or
// token leave the corresponding header unset.
func TenantRequest(t *testing.T, method, path string, body interface{}, orgID, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if orgID != "" {
		req.Header.Set(middleware.TenantHeader, orgID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestSetup holds all the common test dependencies
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	Org        *models.Organization
	User       *models.User
	Token      string
}

// NewTestContext creates a complete test setup with DB, org, user, and token
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	org := CreateTestOrg(t, db)
	user := CreateTestUser(t, db, org)
	token := GenerateTestToken(t, jwtService, user)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		Org:        org,
		User:       user,
		Token:      token,
	}
}
