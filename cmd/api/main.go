package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/reservetable/reservetable-go/internal/config"
	"github.com/reservetable/reservetable-go/internal/handler"
	"github.com/reservetable/reservetable-go/internal/middleware"
	"github.com/reservetable/reservetable-go/internal/repository"
	"github.com/reservetable/reservetable-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.Migrate(ctx, db); err != nil {
		cancel()
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}
	cancel()

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.BcryptCost, cfg.GoogleLinkPolicy)
	hotelService := service.NewHotelService(hotelRepo)
	timeslotService := service.NewTimeslotService(hotelRepo)
	reservationService := service.NewReservationService(reservationRepo)
	adminService := service.NewAdminService(userRepo, hotelRepo, reservationRepo, userRepo)

	if cfg.SeedAdmin() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		cancel()
		if err != nil {
			slog.Error("admin bootstrap failed", "error", err, "email", cfg.AdminEmail)
			os.Exit(1)
		}
		slog.Info("admin ensured", "email", cfg.AdminEmail)
	}

	authHandler := handler.NewAuthHandler(authService)
	hotelHandler := handler.NewHotelHandler(hotelService, timeslotService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	adminHandler := handler.NewAdminHandler(adminService, reservationService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok"}`))
	})

	// Public catalog routes.
	r.Get("/api/hotels", hotelHandler.HandleList)
	r.Get("/api/hotels/{id}", hotelHandler.HandleGet)
	r.Get("/api/hotels/{id}/timeslots", hotelHandler.HandleTimeslots)

	// Credential endpoints, rate limited against guessing.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/register", authHandler.HandleRegister)
		r.Post("/api/auth/login", authHandler.HandleLogin)
		r.Post("/api/auth/google", authHandler.HandleGoogleLogin)
	})

	// Authenticated routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(authService))

		r.Post("/api/auth/logout", authHandler.HandleLogout)
		r.Get("/api/auth/me", authHandler.HandleMe)
		r.Put("/api/users/me", authHandler.HandleUpdateProfile)
		r.Put("/api/users/me/password", authHandler.HandleChangePassword)
		r.Delete("/api/users/me", authHandler.HandleDeleteAccount)

		r.Get("/api/reservations", reservationHandler.HandleList)
		r.Post("/api/reservations", reservationHandler.HandleCreate)
		r.Put("/api/reservations/{id}", reservationHandler.HandleUpdate)
		r.Delete("/api/reservations/{id}", reservationHandler.HandleDelete)
		r.Delete("/api/reservations", reservationHandler.HandleClear)

		// Admin-only routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/api/hotels", hotelHandler.HandleCreate)
			r.Put("/api/hotels/{id}", hotelHandler.HandleUpdate)
			r.Delete("/api/hotels/{id}", hotelHandler.HandleDelete)

			r.Get("/api/admin/dashboard/summary", adminHandler.HandleDashboardSummary)
			r.Get("/api/admin/hotels/{id}/reservations", adminHandler.HandleHotelReservations)
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
