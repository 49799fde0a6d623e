package celebrationshandler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dragondrop/internal/domain/celebrations"
	"dragondrop/internal/domain/employee"
	"dragondrop/internal/transport/http/api"
	"dragondrop/internal/transport/http/middleware"
)

const maxDaysAhead = 366

type Lister interface {
	List(ctx context.Context) ([]employee.Employee, error)
}

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
	r.Route("/celebrations", func(r chi.Router) {
		r.Get("/", h.handleUpcoming)
		r.Get("/summary", h.handleSummary)
		r.Post("/send", h.handleSend)
	})
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	daysAhead := 7
	if raw := r.URL.Query().Get("daysAhead"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > maxDaysAhead {
			api.Fail(w, http.StatusBadRequest, "invalid_days_ahead", "daysAhead must be between 0 and 366", reqID)
			return
		}
		daysAhead = parsed
	}

	emps, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "celebrations_failed", "failed to load employees", reqID)
		return
	}
	alerts := celebrations.Upcoming(emps, daysAhead, time.Now().UTC())
	if alerts == nil {
		alerts = []celebrations.Alert{}
	}
	api.Success(w, alerts, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emps, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "celebrations_summary_failed", "failed to load employees", reqID)
		return
	}
	api.Success(w, celebrations.Summarize(emps, time.Now().UTC()), reqID)
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
