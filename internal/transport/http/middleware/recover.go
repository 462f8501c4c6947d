package middleware

import (
	"log/slog"
	"net/http"

	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/api"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "panic", rec, "path", r.URL.Path,
					"requestId", GetRequestID(r.Context()))
				api.Fail(w, http.StatusInternalServerError, api.CodeInternal,
					"internal server error", GetRequestID(r.Context()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
