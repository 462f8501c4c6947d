package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KHILANO5/HRMS-sub001/internal/domain/auth"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/employee"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/api"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/middleware"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Patch("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{employeeID}", h.handleDeactivate)
	})
}

type createPayload struct {
	Code        string `json:"code"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	JoinDate    string `json:"joinDate"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("code", payload.Code, "code is required")
	v.Required("firstName", payload.FirstName, "firstName is required")
	joinDate, _ := v.Date("joinDate", payload.JoinDate)
	if payload.Email != "" {
		v.Required("password", payload.Password, "password is required when email is set")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Service.Create(r.Context(), employee.CreateParams{
		Code:        payload.Code,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Department:  payload.Department,
		Designation: payload.Designation,
		JoinDate:    joinDate,
		Email:       payload.Email,
		Password:    payload.Password,
	})
	if err != nil {
		h.fail(w, r, err, "failed to create employee")
		return
	}
	api.Created(w, "employee created", emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 20, 100)
	employees, total, err := h.Service.List(r.Context(), employee.ListFilter{
		Department: r.URL.Query().Get("department"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "employees", map[string]any{"employees": employees, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err, "failed to load employee")
		return
	}
	api.Success(w, "employee", emp, middleware.GetRequestID(r.Context()))
}

type updatePayload struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), employee.UpdateParams{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Department:  payload.Department,
		Designation: payload.Designation,
	})
	if err != nil {
		h.fail(w, r, err, "failed to update employee")
		return
	}
	api.Success(w, "employee updated", emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Deactivate(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		h.fail(w, r, err, "failed to deactivate employee")
		return
	}
	api.Success(w, "employee deactivated", nil, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, api.CodeEmployeeNotFound, "employee not found", requestID)
	case errors.Is(err, employee.ErrDuplicate):
		api.Fail(w, http.StatusBadRequest, api.CodeEmployeeDuplicate, "employee code or email already in use", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, fallback, requestID)
	}
}
