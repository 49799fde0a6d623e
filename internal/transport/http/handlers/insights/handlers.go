package insightshandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/insights"
	"dragondrop/internal/transport/http/api"
	"dragondrop/internal/transport/http/middleware"
)

// Lister supplies the employee snapshot every view is computed over.
type Lister interface {
	List(ctx context.Context) ([]employee.Employee, error)
}

type Handler struct {
	Employees Lister
}

func NewHandler(employees Lister) *Handler {
	return &Handler{Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/insights", func(r chi.Router) {
		r.Get("/team-performance", h.view(func(emps []employee.Employee, now time.Time) any {
			return orEmpty(insights.TeamPerformanceView(emps, now))
		}))
		r.Get("/site-comparison", h.view(func(emps []employee.Employee, now time.Time) any {
			return orEmpty(insights.SiteComparisonView(emps, now))
		}))
		r.Get("/turnover", h.view(func(emps []employee.Employee, now time.Time) any {
			return insights.TurnoverView(emps, now)
		}))
		r.Get("/compensation", h.view(func(emps []employee.Employee, now time.Time) any {
			return insights.CompensationView(emps, now)
		}))
		r.Get("/growth", h.view(func(emps []employee.Employee, now time.Time) any {
			return insights.GrowthView(emps, now)
		}))
		r.Get("/recommendations", h.view(func(emps []employee.Employee, now time.Time) any {
			return orEmpty(insights.Recommendations(emps, now))
		}))
	})
}

// orEmpty keeps list views encoding as [] instead of null when no
// employees exist.
func orEmpty[T any](views []T) []T {
	if views == nil {
		return []T{}
	}
	return views
}

func (h *Handler) view(compute func([]employee.Employee, time.Time) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		emps, err := h.Employees.List(r.Context())
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "insights_failed", "failed to load employees", reqID)
			return
		}
		api.Success(w, compute(emps, time.Now().UTC()), reqID)
	}
}
