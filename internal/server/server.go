// Package server exposes the ledger over a JSON HTTP API and serves the
// web frontend.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sobanhassan/hisaabkitaab/internal/auth"
	"github.com/sobanhassan/hisaabkitaab/internal/ledger"
	"github.com/sobanhassan/hisaabkitaab/internal/middleware"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	ledger        *ledger.Service
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// New creates a server around the given ledger and auth services.
func New(ledgerService *ledger.Service, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *Server {
	return &Server{
		ledger:        ledgerService,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Routes registers all API routes on a new mux and returns it. Callers
// may attach additional handlers (static files) before serving.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	s.protected(mux, "GET /api/me", s.handleMe)
	s.protected(mux, "GET /api/friends", s.handleListFriends)
	s.protected(mux, "POST /api/friends", s.handleAddFriend)
	s.protected(mux, "GET /api/friends/{id}", s.handleGetFriend)
	s.protected(mux, "DELETE /api/friends/{id}", s.handleDeleteFriend)
	s.protected(mux, "GET /api/friends/{id}/transactions", s.handleListTransactions)
	s.protected(mux, "POST /api/friends/{id}/transactions", s.handlePostTransaction)
	s.protected(mux, "POST /api/friends/{id}/reconcile", s.handleReconcile)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func (s *Server) protected(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	mux.Handle(pattern, middleware.RequireAuth(s.jwtManager, handler))
}
