package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KHILANO5/HRMS-sub001/internal/domain/attendance"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/api"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/middleware"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
		r.Get("/", h.handleList)
	})
}

type checkPayload struct {
	CheckInTime  string `json:"checkInTime,omitempty"`
	CheckOutTime string `json:"checkOutTime,omitempty"`
	Remarks      string `json:"remarks,omitempty"`
}

func parseOptionalTime(v *shared.Validator, field, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		v.Add(field, "must be an RFC3339 timestamp")
		return nil
	}
	return &parsed
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, api.CodeForbidden, "no employee record linked to this account", middleware.GetRequestID(r.Context()))
		return
	}

	var payload checkPayload
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
			return
		}
	}

	v := shared.NewValidator()
	at := parseOptionalTime(v, "checkInTime", payload.CheckInTime)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Service.CheckIn(r.Context(), user.EmployeeID, at, payload.Remarks)
	if err != nil {
		h.fail(w, r, err, "failed to check in")
		return
	}
	api.Created(w, "checked in", result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeID == "" {
		api.Fail(w, http.StatusForbidden, api.CodeForbidden, "no employee record linked to this account", middleware.GetRequestID(r.Context()))
		return
	}

	var payload checkPayload
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
			return
		}
	}

	v := shared.NewValidator()
	at := parseOptionalTime(v, "checkOutTime", payload.CheckOutTime)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Service.CheckOut(r.Context(), user.EmployeeID, at, payload.Remarks)
	if err != nil {
		h.fail(w, r, err, "failed to check out")
		return
	}
	api.Success(w, "checked out", result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if !user.IsAdmin() {
		employeeID = user.EmployeeID
	}

	v := shared.NewValidator()
	var startDate, endDate time.Time
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		startDate, _ = v.Date("startDate", raw)
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		endDate, _ = v.Date("endDate", raw)
	}
	v.DateOrder("startDate", startDate, "endDate", endDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	page := shared.ParsePagination(r, 31, 100)
	result, err := h.Service.List(r.Context(), attendance.ListFilter{
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to list attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "attendance records", result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		api.Fail(w, http.StatusBadRequest, api.CodeAlreadyCheckedIn, "already checked in today", requestID)
	case errors.Is(err, attendance.ErrMustCheckInFirst):
		api.Fail(w, http.StatusBadRequest, api.CodeMustCheckInFirst, "must check in before checking out", requestID)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		api.Fail(w, http.StatusBadRequest, api.CodeAlreadyCheckedOut, "already checked out today", requestID)
	case errors.Is(err, attendance.ErrInvalidCheckOut):
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "check-out must be after check-in", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, fallback, requestID)
	}
}
