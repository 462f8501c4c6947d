package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KHILANO5/HRMS-sub001/internal/domain/auth"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/reports"
	"github.com/KHILANO5/HRMS-sub001/internal/platform/metrics"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/api"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/middleware"
)

type Handler struct {
	Service   *reports.Service
	Collector *metrics.Collector
}

func NewHandler(service *reports.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Collector: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/reports/dashboard", h.handleDashboard)
	if h.Collector != nil {
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/metrics", h.handleMetrics)
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Service.BuildDashboard(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, "dashboard", dash, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, "metrics", h.Collector.Snapshot(), middleware.GetRequestID(r.Context()))
}
