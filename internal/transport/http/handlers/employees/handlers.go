package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/offboarding"
	"dragondrop/internal/transport/http/api"
	"dragondrop/internal/transport/http/middleware"
	"dragondrop/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleHire)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Patch("/", h.handlePatch)
			r.Delete("/", h.handleDelete)
			r.Post("/move", h.handleMove)
			r.Post("/promote", h.handlePromote)
			r.Post("/transfer", h.handleTransfer)
			r.Post("/commission-tier", h.handleCommissionTier)
			r.Post("/terminate", h.handleTerminate)
		})
	})
	r.Get("/orgchart", h.handleOrgChart)
	r.Get("/teams", h.handleTeams)
	r.Get("/changes", h.handleChanges)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var emps []employee.Employee
	var err error
	if site := r.URL.Query().Get("site"); site != "" {
		emps, err = h.Service.ListBySite(r.Context(), employee.Site(site))
	} else {
		emps, err = h.Service.List(r.Context())
	}
	if err != nil {
		failFromErr(w, err, "employee_list_failed", reqID)
		return
	}
	api.Success(w, emps, reqID)
}

type hireRequest struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	Site           string `json:"site"`
	StartDate      string `json:"startDate"`
	BirthDate      string `json:"birthDate"`
	ManagerID      string `json:"managerId"`
	TeamID         string `json:"teamId"`
	CommissionTier string `json:"commissionTier"`
}

func (h *Handler) handleHire(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req hireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", req.Name, "name is required")
	v.Required("role", req.Role, "role is required")
	v.Required("site", req.Site, "site is required")
	v.Enum("site", req.Site, []string{string(employee.SiteAustin), string(employee.SiteCharlotte)}, "must be austin or charlotte")
	v.Enum("commissionTier", req.CommissionTier, []string{string(employee.TierNew), string(employee.TierVeteran)}, "must be new or veteran")

	emp := employee.Employee{
		Name:           strings.TrimSpace(req.Name),
		Role:           employee.Role(req.Role),
		Site:           employee.Site(req.Site),
		ManagerID:      req.ManagerID,
		TeamID:         req.TeamID,
		CommissionTier: employee.Tier(req.CommissionTier),
	}
	if req.StartDate != "" {
		if parsed, ok := v.Date("startDate", req.StartDate); ok {
			emp.StartDate = parsed
		}
	}
	if req.BirthDate != "" {
		if parsed, ok := v.Date("birthDate", req.BirthDate); ok {
			emp.BirthDate = &parsed
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.Hire(r.Context(), emp)
	if err != nil {
		failFromErr(w, err, "employee_hire_failed", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		failFromErr(w, err, "employee_get_failed", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}
	if err := h.Service.Patch(r.Context(), chi.URLParam(r, "employeeID"), patch); err != nil {
		failFromErr(w, err, "employee_patch_failed", reqID)
		return
	}
	api.Success(w, map[string]bool{"updated": true}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		failFromErr(w, err, "employee_delete_failed", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req struct {
		ManagerID string `json:"managerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}
	if err := h.Service.Move(r.Context(), chi.URLParam(r, "employeeID"), req.ManagerID); err != nil {
		failFromErr(w, err, "employee_move_failed", reqID)
		return
	}
	api.Success(w, map[string]bool{"moved": true}, reqID)
}

func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}
	if err := h.Service.Promote(r.Context(), chi.URLParam(r, "employeeID"), employee.Role(req.Role)); err != nil {
		failFromErr(w, err, "employee_promote_failed", reqID)
		return
	}
	api.Success(w, map[string]bool{"promoted": true}, reqID)
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req struct {
		Site string `json:"site"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}
	if err := h.Service.Transfer(r.Context(), chi.URLParam(r, "employeeID"), employee.Site(req.Site)); err != nil {
		failFromErr(w, err, "employee_transfer_failed", reqID)
		return
	}
	api.Success(w, map[string]bool{"transferred": true}, reqID)
}

func (h *Handler) handleCommissionTier(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req struct {
		Tier string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}
	if err := h.Service.UpdateCommissionTier(r.Context(), chi.URLParam(r, "employeeID"), employee.Tier(req.Tier)); err != nil {
		failFromErr(w, err, "commission_tier_update_failed", reqID)
		return
	}
	api.Success(w, map[string]bool{"updated": true}, reqID)
}

type terminateRequest struct {
	Date                string                 `json:"date"`
	LastWorkingDay      string                 `json:"lastWorkingDay"`
	Reason              string                 `json:"reason"`
	Notes               string                 `json:"notes"`
	Documents           []offboarding.Document `json:"documents"`
	FinalPayout         *float64               `json:"finalPayout"`
	ExitSurveyCompleted bool                   `json:"exitSurveyCompleted"`
	EquipmentReturned   bool                   `json:"equipmentReturned"`
}

func (h *Handler) handleTerminate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req terminateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("reason", req.Reason, "reason is required")
	reasons := make([]string, 0, len(offboarding.Reasons))
	for _, reason := range offboarding.Reasons {
		reasons = append(reasons, string(reason))
	}
	v.Enum("reason", req.Reason, reasons, "must be a known termination reason")

	term := offboarding.Termination{
		Reason:              offboarding.Reason(req.Reason),
		Notes:               req.Notes,
		Documents:           req.Documents,
		ExitSurveyCompleted: req.ExitSurveyCompleted,
		EquipmentReturned:   req.EquipmentReturned,
	}
	if parsed, ok := v.Date("date", req.Date); ok {
		term.Date = parsed
	}
	if req.LastWorkingDay != "" {
		if parsed, ok := v.Date("lastWorkingDay", req.LastWorkingDay); ok {
			term.LastWorkingDay = parsed
		}
	}
	v.DateOrder("date", term.Date, "lastWorkingDay", term.LastWorkingDay)
	if req.FinalPayout != nil {
		payout := decimal.NewFromFloat(*req.FinalPayout)
		term.FinalPayout = &payout
	}
	if v.Reject(w, reqID) {
		return
	}

	if err := h.Service.Terminate(r.Context(), chi.URLParam(r, "employeeID"), term); err != nil {
		failFromErr(w, err, "employee_terminate_failed", reqID)
		return
	}
	api.Success(w, map[string]bool{"terminated": true}, reqID)
}

func (h *Handler) handleOrgChart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emps, err := h.Service.List(r.Context())
	if err != nil {
		failFromErr(w, err, "orgchart_failed", reqID)
		return
	}
	api.Success(w, employee.BuildOrgChart(emps), reqID)
}

func (h *Handler) handleTeams(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	teams, err := h.Service.Teams(r.Context())
	if err != nil {
		failFromErr(w, err, "team_list_failed", reqID)
		return
	}
	api.Success(w, teams, reqID)
}

func (h *Handler) handleChanges(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	limit := shared.ParseLimit(r, 100, 500)
	changes, err := h.Service.Changes(r.Context(), limit)
	if err != nil {
		failFromErr(w, err, "change_list_failed", reqID)
		return
	}
	api.Success(w, changes, reqID)
}

// failFromErr maps domain errors onto HTTP statuses: not-found is 404,
// unconfigured persistence is 503, anything else from the service layer is
// a 400 because service validation runs before any write.
func failFromErr(w http.ResponseWriter, err error, code, reqID string) {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, employee.ErrNotConfigured):
		api.Fail(w, http.StatusServiceUnavailable, "storage_unavailable", "persistence is not configured", reqID)
	default:
		api.Fail(w, http.StatusBadRequest, code, err.Error(), reqID)
	}
}
