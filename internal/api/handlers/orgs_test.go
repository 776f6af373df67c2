package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/hugh/scoutzos/internal/api/dto"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/ids"
	"github.com/hugh/scoutzos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizationHandler_Create(t *testing.T) {
	env := newTestEnv(t, false)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantSlug   string
	}{
		{"first acme", map[string]string{"name": "Acme Corp"}, http.StatusCreated, "acme-corp"},
		{"second acme", map[string]string{"name": "Acme Corp"}, http.StatusCreated, "acme-corp-2"},
		{"extra whitespace", map[string]string{"name": "  Acme   Corp "}, http.StatusCreated, "acme-corp-3"},
		{"blank name", map[string]string{"name": "   "}, http.StatusUnprocessableEntity, ""},
		{"missing name", map[string]string{}, http.StatusUnprocessableEntity, ""},
		{"numeric name", `{"name": 7}`, http.StatusUnprocessableEntity, ""},
		{"malformed", `{"name"`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, "POST", "/api/v1/orgs", tt.body, "")
			testutil.AssertStatus(t, rr, tt.wantStatus)
			if tt.wantStatus == http.StatusCreated {
				var org models.Organization
				testutil.ParseJSONResponse(t, rr, &org)
				assert.Equal(t, tt.wantSlug, org.Slug)
				assert.True(t, ids.Valid(org.ID))
			}
		})
	}
}

func TestOrganizationHandler_ListAndGet(t *testing.T) {
	env := newTestEnv(t, false)

	rr := env.do(t, "POST", "/api/v1/orgs", map[string]string{"name": "Listed Co"}, "")
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var created models.Organization
	testutil.ParseJSONResponse(t, rr, &created)

	rr = env.do(t, "GET", "/api/v1/orgs", nil, "")
	testutil.AssertStatus(t, rr, http.StatusOK)
	require.True(t, strings.HasPrefix(strings.TrimSpace(rr.Body.String()), "["), rr.Body.String())
	var list []models.Organization
	testutil.ParseJSONResponse(t, rr, &list)
	require.Len(t, list, 2)
	assert.Equal(t, env.Org.ID, list[0].ID)
	assert.Equal(t, created.ID, list[1].ID)

	rr = env.do(t, "GET", "/api/v1/orgs/"+created.ID, nil, "")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var got models.Organization
	testutil.ParseJSONResponse(t, rr, &got)
	assert.Equal(t, "listed-co", got.Slug)

	assertErrorKind(t, env.do(t, "GET", "/api/v1/orgs/"+ids.New(), nil, ""), http.StatusNotFound, "not_found")
}

func TestOrganizationHandler_Users(t *testing.T) {
	env := newTestEnv(t, false)

	rr := env.do(t, "POST", "/api/v1/users", map[string]string{"email": "Agent@Example.com", "name": "Agent"}, "")
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var user models.User
	testutil.ParseJSONResponse(t, rr, &user)
	assert.Equal(t, "agent@example.com", user.Email)

	resp := assertErrorKind(t, env.do(t, "POST", "/api/v1/users", map[string]string{"email": "agent@example.com"}, ""), http.StatusConflict, "conflict")
	assert.Equal(t, "a user with this email already exists", resp.Error)

	resp = assertErrorKind(t, env.do(t, "POST", "/api/v1/users", map[string]string{"email": "nope"}, ""), http.StatusUnprocessableEntity, "validation_error")
	assert.Contains(t, resp.Details, "email")

	rr = env.do(t, "GET", "/api/v1/users/"+user.ID, nil, "")
	testutil.AssertStatus(t, rr, http.StatusOK)

	assertErrorKind(t, env.do(t, "GET", "/api/v1/users/"+ids.New(), nil, ""), http.StatusNotFound, "not_found")
}

func TestOrganizationHandler_Members(t *testing.T) {
	env := newTestEnv(t, false)
	user := testutil.CreateTestUser(t, env.DB, testutil.CreateTestOrg(t, env.DB))
	path := "/api/v1/orgs/" + env.Org.ID + "/members"

	rr := env.do(t, "POST", path, map[string]string{"user_id": user.ID, "role": "agent"}, "")
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var m models.UserOrgRole
	testutil.ParseJSONResponse(t, rr, &m)
	assert.Equal(t, models.RoleAgent, m.Role)
	assert.Equal(t, env.Org.ID, m.OrgID)

	assertErrorKind(t, env.do(t, "POST", path, map[string]string{"user_id": user.ID}, ""), http.StatusConflict, "conflict")
	assertErrorKind(t, env.do(t, "POST", path, map[string]string{"user_id": ids.New()}, ""), http.StatusUnprocessableEntity, "validation_error")
	assertErrorKind(t, env.do(t, "POST", path, map[string]string{"user_id": user.ID, "role": "root"}, ""), http.StatusUnprocessableEntity, "validation_error")
	assertErrorKind(t, env.do(t, "POST", "/api/v1/orgs/"+ids.New()+"/members", map[string]string{"user_id": user.ID}, ""), http.StatusNotFound, "not_found")

	rr = env.do(t, "GET", path, nil, "")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var list dto.ListResponse[models.UserOrgRole]
	testutil.ParseJSONResponse(t, rr, &list)
	// the fixture user plus the one added above
	assert.Len(t, list.Items, 2)
}
