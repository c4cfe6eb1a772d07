package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hadirclass/hadir-backend-go/internal/config"
	"github.com/hadirclass/hadir-backend-go/internal/domain/face"
	"github.com/hadirclass/hadir-backend-go/internal/domain/schedule"
	appHTTP "github.com/hadirclass/hadir-backend-go/internal/handler/http"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/cache"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/cron"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/database"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/jwt"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/metrics"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/oauth"
	"github.com/hadirclass/hadir-backend-go/internal/pkg/sse"
	"github.com/hadirclass/hadir-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirclass/hadir-backend-go/internal/service/attendance"
	authService "github.com/hadirclass/hadir-backend-go/internal/service/auth"
	classService "github.com/hadirclass/hadir-backend-go/internal/service/class"
	userService "github.com/hadirclass/hadir-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	redis := cache.NewRedis(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	defer redis.Close()
	if !redis.Healthy(context.Background()) {
		fmt.Println("Error connecting to redis")
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	classRepo := postgresql.NewClassRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	appMetrics := metrics.New(nil)
	hub := sse.NewHub()

	windowPolicy := schedule.Policy{
		EarlyOpen:  cfg.Attendance.EarlyOpen,
		OnTimeSpan: cfg.Attendance.OnTimeSpan,
		LateGrace:  cfg.Attendance.LateGrace,
	}
	matcher := face.NewMatcher(cfg.Attendance.FaceMatchDistance)
	engine := attendanceService.NewEngine(windowPolicy, matcher)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo)
	classSvc := classService.NewClassService(classRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		classRepo,
		userRepo,
		engine,
		redis,
		hub,
		appMetrics,
		loc,
	)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	profileHandler := appHTTP.NewProfileHandler(userSvc)
	classHandler := appHTTP.NewClassHandler(classSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	eventsHandler := appHTTP.NewEventsHandler(JWTService, hub, classRepo, appMetrics)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			AppVersion:     cfg.App.Version,
			AppEnv:         cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		authHandler,
		profileHandler,
		classHandler,
		attendanceHandler,
		eventsHandler,
	)

	scheduler := cron.NewScheduler()
	absenceJobs := cron.NewAbsenceJobs(attendanceRepo, classRepo, windowPolicy, appMetrics, loc)
	absenceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
