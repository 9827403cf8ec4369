// Package httpapi exposes the application over a JSON HTTP API: account
// management, the per-user asset and ticket partitions, the shared equipment
// inventory with its service history, CSV export and the assistant relay.
package httpapi

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"technest/internal/assistant"
	"technest/internal/auth"
	"technest/internal/config"
	"technest/internal/store"
	"technest/repository"
)

// Server bundles the stores and repositories the handlers work on.
type Server struct {
	Cfg         *config.Config
	Policy      *auth.Policy
	Accounts    *store.Credentials
	Sessions    *store.Sessions
	Scope       *store.Scope
	Equipment   repository.EquipmentRepositoryI
	Maintenance repository.MaintenanceRepositoryI
	Assistant   *assistant.Client
}

// Routes builds the router. Registration, login and session restore are
// public; everything else requires a valid Bearer token.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/api/register", s.handleRegister)
	r.Post("/api/login", s.handleLogin)
	r.Get("/api/session", s.handleSession)

	r.Group(func(g chi.Router) {
		g.Use(auth.Middleware(s.Cfg.Auth.TokenSecret))

		g.Post("/api/logout", s.handleLogout)
		g.Put("/api/password", s.handleChangePassword)
		g.Delete("/api/account", s.handleDeleteAccount)

		g.Get("/api/assets", s.handleGetAssets)
		g.Put("/api/assets", s.handleSaveAssets)
		g.Get("/api/tickets", s.handleGetTickets)
		g.Put("/api/tickets", s.handleSaveTickets)
		g.Post("/api/tickets", s.handleCreateTicket)

		g.Get("/api/equipment", s.handleListEquipment)
		g.Post("/api/equipment", s.handleCreateEquipment)
		g.Get("/api/equipment/{id}", s.handleGetEquipment)
		g.Put("/api/equipment/{id}", s.handleUpdateEquipment)
		g.Delete("/api/equipment/{id}", s.handleDeleteEquipment)
		g.Get("/api/equipment/{id}/logs", s.handleListEquipmentLogs)
		g.Post("/api/equipment/{id}/logs", s.handleCreateLog)
		g.Get("/api/logs", s.handleListLogs)
		g.Delete("/api/logs/{id}", s.handleDeleteLog)

		g.Get("/api/export/equipment.csv", s.handleExportEquipment)
		g.Get("/api/export/logs.csv", s.handleExportLogs)

		g.Post("/api/assistant", s.handleAssistant)

		g.Get("/api/admin/users", s.handleListUsers)
		g.Put("/api/admin/users/{username}/role", s.handleSetRole)
		g.Delete("/api/admin/users/{username}", s.handleAdminDeleteUser)
	})

	return r
}

// Start begins serving on the configured address and returns a shutdown
// function that drains in-flight requests.
func Start(s *Server) (func(context.Context) error, error) {
	addr := s.Cfg.HTTP.Address
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	go func() {
		log.Printf("HTTP server listening on %s", addr)
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server stopped: %v", err)
		}
	}()
	return srv.Shutdown, nil
}
