package insightshandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"dragondrop/internal/domain/employee"
	"dragondrop/internal/transport/http/api"
)

type staticLister struct {
	emps []employee.Employee
}

func (s staticLister) List(context.Context) ([]employee.Employee, error) {
	return s.emps, nil
}

func newRouter(lister staticLister) http.Handler {
	r := chi.NewRouter()
	NewHandler(lister).RegisterRoutes(r)
	return r
}

func getView(t *testing.T, router http.Handler, path string) api.Envelope {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
	}
	var env api.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestListViewsEncodeEmptyAsArray(t *testing.T) {
	router := newRouter(staticLister{})

	for _, path := range []string{
		"/insights/team-performance",
		"/insights/site-comparison",
		"/insights/recommendations",
	} {
		env := getView(t, router, path)
		views, ok := env.Data.([]any)
		if !ok {
			t.Fatalf("GET %s: expected JSON array, got %T", path, env.Data)
		}
		if len(views) != 0 {
			t.Fatalf("GET %s: expected empty array, got %+v", path, views)
		}
	}
}

func TestTeamPerformanceListsManagers(t *testing.T) {
	now := time.Now().UTC()
	router := newRouter(staticLister{emps: []employee.Employee{
		{
			ID: "mgr", Name: "Morgan Manager", Role: employee.RoleSalesManager,
			Site: employee.SiteAustin, Status: employee.StatusActive,
			StartDate: now.AddDate(-2, 0, 0),
		},
		{
			ID: "a1", Name: "Alex Agent", Role: employee.RoleAgent,
			Site: employee.SiteAustin, Status: employee.StatusActive,
			ManagerID: "mgr", StartDate: now.AddDate(-1, 0, 0),
		},
	}})

	env := getView(t, router, "/insights/team-performance")
	views, ok := env.Data.([]any)
	if !ok || len(views) != 1 {
		t.Fatalf("expected one team view, got %+v", env.Data)
	}
	team := views[0].(map[string]any)
	if team["managerName"] != "Morgan Manager" {
		t.Fatalf("unexpected team view: %+v", team)
	}
}
