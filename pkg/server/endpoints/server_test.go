package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/prabaj-wq/accessgov/pkg/audit"
	"github.com/prabaj-wq/accessgov/pkg/compliance"
	"github.com/prabaj-wq/accessgov/pkg/config"
	"github.com/prabaj-wq/accessgov/pkg/directory"
	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/notify"
	"github.com/prabaj-wq/accessgov/pkg/risk"
	"github.com/prabaj-wq/accessgov/pkg/server"
	"github.com/prabaj-wq/accessgov/pkg/server/middleware"
	"github.com/prabaj-wq/accessgov/pkg/server/store/memory"
	"github.com/prabaj-wq/accessgov/pkg/workflow"
)

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	os.Exit(m.Run())
}

var serverTestNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestServer builds a fully wired server over the in-memory backend
// with every endpoint registered. With no GOV_TOKEN_SECRET the identity
// middleware runs in X-Identity mode.
func newTestServer(t *testing.T) (*server.Server, *memory.Store) {
	t.Helper()
	t.Setenv("GOV_TOKEN_SECRET", "")

	mem := memory.NewStore()
	require.NoError(t, mem.CreateRole(model.Role{
		RoleID:         "analyst",
		Name:           "Financial Analyst",
		Classification: model.ClassificationStandard,
	}))
	require.NoError(t, mem.CreateResource(model.Resource{
		ResourceID: "fin-ledger",
		Name:       "Financial Ledger",
		Category:   "Financial",
	}))
	require.NoError(t, mem.CreateResource(model.Resource{
		ResourceID: "docs-wiki",
		Name:       "Documentation Wiki",
		Category:   "Documentation",
	}))

	resolver := directory.NewStaticResolver(map[string][]directory.Approver{
		"default": {
			{Identity: "alice", Role: "manager"},
			{Identity: "carol", Role: "security"},
		},
	})

	nextID := 0
	engine := workflow.NewEngine(mem, mem, resolver, notify.Discard{}, risk.DefaultPolicy).
		WithClock(func() time.Time { return serverTestNow }).
		WithIDGenerator(func() string {
			nextID++
			return fmt.Sprintf("req-%d", nextID)
		})

	aggregator := compliance.NewAggregator(mem, mem, compliance.DefaultPolicy).
		WithClock(func() time.Time { return serverTestNow })

	s := server.NewServer(server.Stores{
		Catalog:    mem,
		Grants:     mem,
		Requests:   mem,
		Violations: mem,
		Metrics:    mem,
		Health:     mem,
	}, engine, aggregator, config.Get(), nil, "127.0.0.1", "0")

	RegisterAll(s)
	return s, mem
}

// doRequest performs a request against the server router as "admin"
func doRequest(s *server.Server, method, path, body string) *httptest.ResponseRecorder {
	return doRequestAs(s, method, path, body, "admin")
}

func doRequestAs(s *server.Server, method, path, body, identity string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-Identity", identity)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// requestWithIdentity builds a request with the caller identity already on
// the context, for driving handlers directly.
func requestWithIdentity(method, path, body, identity string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.IdentityContextKey, identity)
	return req.WithContext(ctx)
}

func withMuxVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}
