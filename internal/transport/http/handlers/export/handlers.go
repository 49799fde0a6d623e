package exporthandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dragondrop/internal/domain/commission"
	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/offboarding"
	"dragondrop/internal/export"
	"dragondrop/internal/transport/http/api"
	"dragondrop/internal/transport/http/middleware"
)

type EmployeeReader interface {
	List(ctx context.Context) ([]employee.Employee, error)
	Get(ctx context.Context, id string) (*employee.Employee, error)
}

type Handler struct {
	Employees      EmployeeReader
	OffboardingDir string
}

func NewHandler(employees EmployeeReader, offboardingDir string) *Handler {
	return &Handler{Employees: employees, OffboardingDir: offboardingDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/export/roster.xlsx", h.handleRoster)
	r.Post("/employees/{employeeID}/offboarding/pdf", h.handleOffboardingPDF)
}

func (h *Handler) handleRoster(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	emps, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to load employees", reqID)
		return
	}
	f, err := export.BuildRoster(emps, time.Now().UTC())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build roster", reqID)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=roster-%s.xlsx", time.Now().UTC().Format("2006-01-02")))
	if err := f.Write(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to write roster", reqID)
	}
}

func (h *Handler) handleOffboardingPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	emp, err := h.Employees.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "offboarding_pdf_failed", "failed to load employee", reqID)
		return
	}
	if emp.Termination == nil {
		api.Fail(w, http.StatusConflict, "not_terminated", "employee has no termination record", reqID)
		return
	}

	path, err := offboarding.GenerateSummaryPDF(h.OffboardingDir, offboarding.SummaryData{
		EmployeeID:   emp.ID,
		Name:         emp.Name,
		Role:         string(emp.Role),
		Site:         string(emp.Site),
		StartDate:    emp.StartDate,
		Termination:  *emp.Termination,
		TenureMonths: commission.MonthsBetween(emp.StartDate, emp.Termination.Date),
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "offboarding_pdf_failed", "failed to generate summary", reqID)
		return
	}
	api.Created(w, map[string]string{"path": path}, reqID)
}
