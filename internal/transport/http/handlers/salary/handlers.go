package salaryhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/KHILANO5/HRMS-sub001/internal/domain/auth"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/employee"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/salary"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/api"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/middleware"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/shared"
)

type Handler struct {
	Service *salary.Service
}

func NewHandler(service *salary.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salary", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{employeeID}", h.handleUpsert)
		r.Get("/{employeeID}", h.handleGet)
		r.Get("/{employeeID}/payslip", h.handlePayslip)
	})
}

type upsertPayload struct {
	BasicSalary   decimal.Decimal `json:"basicSalary"`
	Allowances    decimal.Decimal `json:"allowances"`
	Deductions    decimal.Decimal `json:"deductions"`
	EffectiveFrom string          `json:"effectiveFrom"`
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var payload upsertPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	effectiveFrom, _ := v.Date("effectiveFrom", payload.EffectiveFrom)
	if payload.BasicSalary.IsNegative() {
		v.Add("basicSalary", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	st, err := h.Service.Upsert(r.Context(), salary.UpsertParams{
		EmployeeID:    chi.URLParam(r, "employeeID"),
		BasicSalary:   payload.BasicSalary,
		Allowances:    payload.Allowances,
		Deductions:    payload.Deductions,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		h.fail(w, r, err, "failed to save salary structure")
		return
	}
	api.Success(w, "salary structure saved", st, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !user.IsAdmin() && employeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, api.CodeForbidden, "cannot view another employee's salary", middleware.GetRequestID(r.Context()))
		return
	}

	st, err := h.Service.Get(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err, "failed to load salary structure")
		return
	}
	api.Success(w, "salary structure", st, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !user.IsAdmin() && employeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, api.CodeForbidden, "cannot view another employee's payslip", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1970 && v <= 9999 {
			year = v
		}
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			month = time.Month(v)
		}
	}

	slip, err := h.Service.BuildPayslip(r.Context(), employeeID, year, month)
	if err != nil {
		h.fail(w, r, err, "failed to build payslip")
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		pdfBytes, err := salary.RenderPayslipPDF(slip)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to render payslip", middleware.GetRequestID(r.Context()))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=payslip-%s-%04d-%02d.pdf", slip.EmployeeCode, year, int(month)))
		_, _ = w.Write(pdfBytes)
		return
	}

	api.Success(w, "payslip", slip, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, salary.ErrNotFound):
		api.Fail(w, http.StatusNotFound, api.CodeSalaryNotFound, "salary structure not found", requestID)
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, api.CodeEmployeeNotFound, "employee not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, fallback, requestID)
	}
}
