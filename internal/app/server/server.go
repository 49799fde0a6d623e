// Package server wires configuration, storage, services, background jobs,
// and the HTTP router into a running process.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"dragondrop/internal/db"
	"dragondrop/internal/domain/celebrations"
	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/notify"
	"dragondrop/internal/domain/tenure"
	"dragondrop/internal/platform/config"
	"dragondrop/internal/platform/jobs"
	"dragondrop/internal/platform/metrics"
	"dragondrop/internal/transport/http/api"
	celebrationshandler "dragondrop/internal/transport/http/handlers/celebrations"
	employeeshandler "dragondrop/internal/transport/http/handlers/employees"
	exporthandler "dragondrop/internal/transport/http/handlers/export"
	insightshandler "dragondrop/internal/transport/http/handlers/insights"
	tenurehandler "dragondrop/internal/transport/http/handlers/tenure"
	"dragondrop/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if pool == nil {
		slog.Warn("DATABASE_URL not set, running without persistence")
	} else {
		defer pool.Close()
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				slog.Error("migrations failed", "err", err)
				os.Exit(1)
			}
		}
	}

	store := employee.NewStore(pool)
	changeSink := notify.NewWebhookSink(cfg.WorkflowWebhookURL)
	chatGateway := notify.NewWebhookGateway(cfg.ChatWebhookURL)

	employeeSvc := employee.NewService(store, changeSink)
	tenureSvc := tenure.NewService(chatGateway, cfg.ChatChannel)
	celebrationsSvc := celebrations.NewService(chatGateway)

	collector := metrics.New()
	digests := jobs.New(employeeSvc, tenureSvc, celebrationsSvc, cfg, collector)
	digests.Start(ctx)

	unsubscribe, err := employeeSvc.Subscribe(ctx, func(emps []employee.Employee) {
		slog.Info("employee collection changed", "count", len(emps))
	})
	if err != nil {
		slog.Warn("employee change feed unavailable", "err", err)
	} else {
		defer unsubscribe()
	}

	router := newRouter(cfg, pool, collector, employeeSvc, digests)

	slog.Info("dragondrop listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newRouter(cfg config.Config, pool *pgxpool.Pool, collector *metrics.Collector, employeeSvc *employee.Service, digests *jobs.Service) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.UIOrigin},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pool == nil {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready (no database)"))
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		employeeshandler.NewHandler(employeeSvc).RegisterRoutes(r)
		insightshandler.NewHandler(employeeSvc).RegisterRoutes(r)
		tenurehandler.NewHandler(employeeSvc, digests, jobs.JobTenureDigest).RegisterRoutes(r)
		celebrationshandler.NewHandler(employeeSvc, digests, jobs.JobCelebrationDigest).RegisterRoutes(r)
		exporthandler.NewHandler(employeeSvc, cfg.OffboardingDir).RegisterRoutes(r)
	})

	return router
}
