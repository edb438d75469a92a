package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabaj-wq/accessgov/pkg/model"
)

func TestRoleEndpoints(t *testing.T) {
	t.Run("create role", func(t *testing.T) {
		s, mem := newTestServer(t)

		w := doRequest(s, "POST", "/roles", `{"role_id":"auditor","name":"Internal Auditor","classification":"view-only"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		role, err := mem.FetchRole("auditor")
		require.NoError(t, err)
		assert.Equal(t, model.ClassificationViewOnly, role.Classification)
	})

	t.Run("duplicate role conflicts", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "POST", "/roles", `{"role_id":"analyst","name":"dup","classification":"standard"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid classification is unprocessable", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "POST", "/roles", `{"role_id":"auditor","name":"Auditor","classification":"superuser"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "POST", "/roles", `{"role_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list roles", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "GET", "/roles", "")

		require.Equal(t, http.StatusOK, w.Code)
		var roles []model.Role
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roles))
		require.Len(t, roles, 1)
		assert.Equal(t, "analyst", roles[0].RoleID)
	})

	t.Run("show missing role", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "GET", "/roles/ghost", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update returns the stored role", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "PUT", "/roles/analyst", `{"name":"Senior Analyst","classification":"elevated"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var role model.Role
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &role))
		assert.Equal(t, "Senior Analyst", role.Name)
		assert.Equal(t, model.ClassificationElevated, role.Classification)
	})

	t.Run("delete refuses while grants remain", func(t *testing.T) {
		s, mem := newTestServer(t)
		require.NoError(t, mem.SetGrant("analyst", "fin-ledger", model.LevelRead))

		w := doRequest(s, "DELETE", "/roles/analyst", "")
		assert.Equal(t, http.StatusConflict, w.Code)

		w = doRequest(s, "DELETE", "/roles/analyst?cascade=true", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, mem.RoleExists("analyst"))
	})

	t.Run("requires an identity", func(t *testing.T) {
		s, _ := newTestServer(t)

		req := httptest.NewRequest("GET", "/roles", strings.NewReader(""))
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestResourceEndpoints(t *testing.T) {
	t.Run("create and show resource", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "POST", "/resources", `{"resource_id":"hr-payroll","name":"Payroll","category":"HR"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = doRequest(s, "GET", "/resources/hr-payroll", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resource model.Resource
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resource))
		assert.Equal(t, "HR", resource.Category)
	})

	t.Run("retire refuses while grants remain", func(t *testing.T) {
		s, mem := newTestServer(t)
		require.NoError(t, mem.SetGrant("analyst", "fin-ledger", model.LevelRead))

		w := doRequest(s, "DELETE", "/resources/fin-ledger", "")
		assert.Equal(t, http.StatusConflict, w.Code)

		require.NoError(t, mem.SetGrant("analyst", "fin-ledger", model.LevelNone))
		w = doRequest(s, "DELETE", "/resources/fin-ledger", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("retire missing resource", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "DELETE", "/resources/ghost", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
