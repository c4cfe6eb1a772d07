package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirclass/hadir-backend-go/internal/handler/http/middleware"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/jwt"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/metrics"
)

type RouterConfig struct {
	AppName        string
	AppVersion     string
	AppEnv         string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	profileHandler ProfileHandler,
	classHandler ClassHandler,
	attendanceHandler AttendanceHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.AppVersion),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// EventSource cannot send Authorization headers; the stream
		// authenticates with a short-lived token in the query string.
		r.Get("/classes/{classID}/events", eventsHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", profileHandler.Me)
				r.Patch("/", profileHandler.Update)
				r.Post("/face", profileHandler.EnrollFace)
				r.Put("/face", profileHandler.ReEnrollFace)
			})

			r.Get("/events/token", eventsHandler.Token)

			r.Route("/classes", func(r chi.Router) {
				r.Get("/", classHandler.ListMine)

				// Teacher only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireTeacher)
					r.Post("/", classHandler.Create)
				})

				// Student only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStudent)
					r.Post("/join", classHandler.Join)
				})

				r.Route("/{classID}", func(r chi.Router) {
					r.Get("/", classHandler.Get)
					r.Get("/window", attendanceHandler.WindowStatus)

					// Teacher only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireTeacher)
						r.Patch("/settings", classHandler.UpdateSettings)
						r.Get("/members", classHandler.ListMembers)
						r.Get("/attendance", attendanceHandler.ClassHistory)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.MyHistory)

				// Student only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStudent)
					r.Post("/check-in", attendanceHandler.CheckIn)
					r.Post("/{recordID}/late-reason", attendanceHandler.SubmitLateReason)
				})
			})
		})
	})
	return r
}
