package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sobanhassan/hisaabkitaab/internal/ledger"
	"github.com/sobanhassan/hisaabkitaab/internal/middleware"
	"github.com/sobanhassan/hisaabkitaab/internal/models"
)

type addFriendRequest struct {
	Name string `json:"name"`
}

type postTransactionRequest struct {
	// Amount accepts a JSON number or string; decimal parsing keeps
	// cents exact either way.
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Direction   string          `json:"direction"`
}

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := s.ledger.ListFriends(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"friends": friends})
}

func (s *Server) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	var req addFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	friend, err := s.ledger.AddFriend(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, friend)
}

func (s *Server) handleGetFriend(w http.ResponseWriter, r *http.Request) {
	friend, err := s.ledger.GetFriend(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friend)
}

func (s *Server) handleDeleteFriend(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteFriend(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.ledger.ListTransactions(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txns})
}

func (s *Server) handlePostTransaction(w http.ResponseWriter, r *http.Request) {
	var req postTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	txn, err := s.ledger.PostTransaction(
		r.Context(),
		middleware.GetUserID(r.Context()),
		r.PathValue("id"),
		req.Amount,
		req.Description,
		models.Direction(req.Direction),
	)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	result, err := s.ledger.Reconcile(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeError maps ledger errors onto HTTP statuses. Validation errors
// carry their message through so the caller can correct input; storage
// failures stay generic.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ledger.ErrFriendNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		slog.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
