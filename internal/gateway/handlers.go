package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"doppel/internal/agent"
)

type chatRequest struct {
	Message string          `json:"message"`
	History []agent.Message `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.chatter.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		slog.Error("chat turn failed", "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, agent.ErrToolRoundsExceeded) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.ledger.ListLeads(r.Context())
	if err != nil {
		slog.Error("listing leads failed", "error", err)
		writeError(w, http.StatusInternalServerError, "listing leads failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.ledger.ListQuestions(r.Context())
	if err != nil {
		slog.Error("listing questions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "listing questions failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
