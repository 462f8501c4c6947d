package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KHILANO5/HRMS-sub001/internal/domain/auth"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/leave"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/api"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/middleware"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/requests", h.handleCreateRequest)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Patch("/requests/{requestID}", h.handleDecideRequest)
		r.Delete("/requests/{requestID}", h.handleCancelRequest)
		r.Get("/balance", h.handleBalance)
		r.Get("/history", h.handleHistory)
	})
}

type createRequestPayload struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, api.CodeForbidden, "no employee record linked to this account", middleware.GetRequestID(r.Context()))
		return
	}

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("leaveType", payload.LeaveType, "leaveType is required")
	v.Enum("leaveType", payload.LeaveType, []string{leave.TypePaid, leave.TypeSick}, "leaveType must be paid or sick")
	startDate, _ := v.Date("startDate", payload.StartDate)
	endDate, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", startDate, "endDate", endDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Service.CreateRequest(r.Context(), user.EmployeeID, strings.ToLower(payload.LeaveType), startDate, endDate, payload.Reason)
	if err != nil {
		h.fail(w, r, err, "failed to create leave request")
		return
	}
	api.Created(w, "leave request submitted", req, middleware.GetRequestID(r.Context()))
}

type decidePayload struct {
	Status       string `json:"status"`
	AdminRemarks string `json:"adminRemarks"`
}

func (h *Handler) handleDecideRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	var payload decidePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, []string{leave.StatusApproved, leave.StatusRejected}, "status must be approved or rejected")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Service.Decide(r.Context(), requestID, user.UserID, strings.ToLower(payload.Status), payload.AdminRemarks)
	if err != nil {
		h.fail(w, r, err, "failed to update leave request")
		return
	}
	api.Success(w, "leave request "+req.Status, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancelRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	if err := h.Service.Cancel(r.Context(), requestID, user.EmployeeID); err != nil {
		h.fail(w, r, err, "failed to cancel leave request")
		return
	}
	api.Success(w, "leave request cancelled", nil, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		employeeID = user.EmployeeID
	}
	if !user.IsAdmin() && employeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, api.CodeForbidden, "cannot view another employee's balance", middleware.GetRequestID(r.Context()))
		return
	}

	year := parseYear(r)
	balances, err := h.Service.Balances(r.Context(), employeeID, year)
	if err != nil {
		h.fail(w, r, err, "failed to load leave balance")
		return
	}
	api.Success(w, "leave balance", balances, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if !user.IsAdmin() {
		employeeID = user.EmployeeID
	}

	page := shared.ParsePagination(r, 20, 100)
	result, err := h.Service.History(r.Context(), leave.HistoryFilter{
		EmployeeID: employeeID,
		Year:       parseYear(r),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		h.fail(w, r, err, "failed to load leave history")
		return
	}
	api.Success(w, "leave history", result, middleware.GetRequestID(r.Context()))
}

func parseYear(r *http.Request) int {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1970 || year > 9999 {
		return 0
	}
	return year
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, api.CodeLeaveNotFound, "leave request not found", requestID)
	case errors.Is(err, leave.ErrInsufficientBalance):
		api.Fail(w, http.StatusBadRequest, api.CodeInsufficientBalance, "insufficient leave balance", requestID)
	case errors.Is(err, leave.ErrOverlapConflict):
		api.Fail(w, http.StatusBadRequest, api.CodeOverlapConflict, "leave dates overlap an existing request", requestID)
	case errors.Is(err, leave.ErrBalanceNotFound):
		api.Fail(w, http.StatusNotFound, api.CodeBalanceNotFound, "leave balance not found", requestID)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusBadRequest, api.CodeAlreadyProcessed, "leave request already processed", requestID)
	case errors.Is(err, leave.ErrForbidden):
		api.Fail(w, http.StatusForbidden, api.CodeLeaveForbidden, "only the requesting employee may cancel", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, fallback, requestID)
	}
}
