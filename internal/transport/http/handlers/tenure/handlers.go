package tenurehandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/tenure"
	"dragondrop/internal/transport/http/api"
	"dragondrop/internal/transport/http/middleware"
)

type Lister interface {
	List(ctx context.Context) ([]employee.Employee, error)
}

// Runner triggers a background digest immediately.
type Runner interface {
	RunNow(ctx context.Context, jobType string) (any, error)
}

type Handler struct {
	Employees Lister
	Digests   Runner
	JobType   string
}

func NewHandler(employees Lister, digests Runner, jobType string) *Handler {
	return &Handler{Employees: employees, Digests: digests, JobType: jobType}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tenure", func(r chi.Router) {
		r.Get("/alerts", h.handleAlerts)
		r.Get("/summary", h.handleSummary)
		r.Post("/alerts/send", h.handleSend)
	})
}

func (h *Handler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	site := employee.Site(r.URL.Query().Get("site"))
	if site != "" && !site.Valid() {
		api.Fail(w, http.StatusBadRequest, "unknown_site", "site must be austin or charlotte", reqID)
		return
	}
	emps, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "tenure_alerts_failed", "failed to load employees", reqID)
		return
	}
	alerts := tenure.UpcomingAlerts(emps, site, time.Now().UTC())
	if alerts == nil {
		alerts = []tenure.Alert{}
	}
	api.Success(w, alerts, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	site := employee.Site(r.URL.Query().Get("site"))
	if site != "" && !site.Valid() {
		api.Fail(w, http.StatusBadRequest, "unknown_site", "site must be austin or charlotte", reqID)
		return
	}
	emps, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "tenure_summary_failed", "failed to load employees", reqID)
		return
	}
	api.Success(w, tenure.Summarize(emps, site, time.Now().UTC()), reqID)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	result, err := h.Digests.RunNow(r.Context(), h.JobType)
	if err != nil {
		api.Fail(w, http.StatusBadGateway, "digest_send_failed", err.Error(), reqID)
		return
	}
	api.Success(w, result, reqID)
}
