package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kumulworks/hris-backend-go/internal/config"
	"github.com/kumulworks/hris-backend-go/internal/handler/http/middleware"
	"github.com/kumulworks/hris-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg config.AppConfig,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveCreditHandler LeaveCreditHandler,
	applicationHandler ApplicationHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kumulworks-hris"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", attendanceHandler.Create)
				r.Get("/", attendanceHandler.List)
				r.Post("/absent", attendanceHandler.MarkAbsent)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.Get)
					r.Put("/punches", attendanceHandler.ReplacePunches)
				})
			})

			r.Route("/leave-credits", func(r chi.Router) {
				r.Post("/", leaveCreditHandler.Grant)
				r.Post("/adjust", leaveCreditHandler.Adjust)
				r.Get("/{employeeID}", leaveCreditHandler.GetBalance)
				r.Delete("/{employeeID}/{category}/{year}", leaveCreditHandler.Delete)
			})

			r.Route("/applications", func(r chi.Router) {
				r.Post("/", applicationHandler.Submit)
				r.Get("/my", applicationHandler.ListMine)
				r.Get("/pending", applicationHandler.ListPending)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", applicationHandler.Get)
					r.Post("/approve", applicationHandler.Approve)
					r.Post("/reject", applicationHandler.Reject)
					r.Post("/cancel", applicationHandler.Cancel)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/compute", payrollHandler.Compute)
				r.Post("/recompute", payrollHandler.Recompute)
				r.Get("/", payrollHandler.List)
				r.Get("/{employeeID}", payrollHandler.Get)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return r
}
