// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/courtbook/courtbook/internal/api"
	adminapi "github.com/courtbook/courtbook/internal/api/admin"
	"github.com/courtbook/courtbook/internal/api/auth"
	bookingsapi "github.com/courtbook/courtbook/internal/api/bookings"
	courtsapi "github.com/courtbook/courtbook/internal/api/courts"
	trainersapi "github.com/courtbook/courtbook/internal/api/trainers"
	"github.com/courtbook/courtbook/internal/booking"
	"github.com/courtbook/courtbook/internal/config"
	"github.com/courtbook/courtbook/internal/db"
	"github.com/courtbook/courtbook/internal/email"
)

type serverDeps struct {
	db       *db.DB
	booking  *booking.Service
	sessions *auth.Sessions
	email    email.Sender
}

func newServer(cfg *config.Config, deps serverDeps) *http.Server {
	router := http.NewServeMux()

	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithAuth(deps.sessions),
		api.WithRequestID,
	)

	registerRoutes(router, deps)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, deps serverDeps) {
	authHandler := auth.NewHandler(deps.db.Queries, deps.sessions)
	courtsHandler := courtsapi.NewHandler(deps.db.Queries, deps.booking)
	trainersHandler := trainersapi.NewHandler(deps.db.Queries, deps.booking)
	bookingsHandler := bookingsapi.NewHandler(deps.booking, deps.db.Queries, deps.email)
	adminHandler := adminapi.NewHandler(deps.booking)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth routes
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.HandleLogout)

	// Court and availability routes
	mux.HandleFunc("GET /api/v1/courts", courtsHandler.HandleList)
	mux.HandleFunc("GET /api/v1/courts/{id}", courtsHandler.HandleGet)
	mux.HandleFunc("GET /api/v1/courts/{id}/slots", courtsHandler.HandleSlots)
	mux.HandleFunc("GET /api/v1/availability", courtsHandler.HandleAvailability)

	// Trainer routes
	mux.HandleFunc("GET /api/v1/trainers", trainersHandler.HandleList)
	mux.HandleFunc("GET /api/v1/trainers/{id}", trainersHandler.HandleGet)
	mux.HandleFunc("GET /api/v1/trainers/{id}/availability", trainersHandler.HandleAvailability)

	// Booking routes
	mux.HandleFunc("POST /api/v1/bookings", bookingsHandler.HandleCreate)
	mux.HandleFunc("GET /api/v1/bookings", bookingsHandler.HandleList)
	mux.HandleFunc("DELETE /api/v1/bookings/{id}", bookingsHandler.HandleCancel)

	// Admin routes
	mux.HandleFunc("GET /api/v1/admin/bookings", adminHandler.HandleDay)
	mux.HandleFunc("DELETE /api/v1/admin/bookings/{id}", adminHandler.HandleCancel)
}
