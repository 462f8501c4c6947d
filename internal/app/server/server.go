package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KHILANO5/HRMS-sub001/internal/domain/attendance"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/auth"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/employee"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/leave"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/reports"
	"github.com/KHILANO5/HRMS-sub001/internal/domain/salary"
	"github.com/KHILANO5/HRMS-sub001/internal/platform/config"
	"github.com/KHILANO5/HRMS-sub001/internal/platform/db"
	"github.com/KHILANO5/HRMS-sub001/internal/platform/metrics"
	attendancehandler "github.com/KHILANO5/HRMS-sub001/internal/transport/http/handlers/attendance"
	authhandler "github.com/KHILANO5/HRMS-sub001/internal/transport/http/handlers/auth"
	employeehandler "github.com/KHILANO5/HRMS-sub001/internal/transport/http/handlers/employee"
	leavehandler "github.com/KHILANO5/HRMS-sub001/internal/transport/http/handlers/leave"
	reportshandler "github.com/KHILANO5/HRMS-sub001/internal/transport/http/handlers/reports"
	salaryhandler "github.com/KHILANO5/HRMS-sub001/internal/transport/http/handlers/salary"
	"github.com/KHILANO5/HRMS-sub001/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}

	cutoffHour, cutoffMinute, err := config.ParseCutoff(cfg.LateCutoff)
	if err != nil {
		pool.Close()
		return nil, err
	}

	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.JWTTTL)
	employeeService := employee.NewService(employee.NewStore(pool), cfg.PaidLeaveDefault, cfg.SickLeaveDefault)
	leaveService := leave.NewService(leave.NewStore(pool))
	attendanceService := attendance.NewService(attendance.NewStore(pool), attendance.Rules{
		CutoffHour:    cutoffHour,
		CutoffMinute:  cutoffMinute,
		StandardHours: cfg.StandardHours,
	})
	salaryService := salary.NewService(salary.NewStore(pool), employeeService, attendanceService)
	reportsService := reports.NewService(reports.NewStore(pool))

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		employeehandler.NewHandler(employeeService).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceService).RegisterRoutes(r)
		salaryhandler.NewHandler(salaryService).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService, collector).RegisterRoutes(r)
	})

	return &App{Config: cfg, DB: pool, Router: router}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("HRMS server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
