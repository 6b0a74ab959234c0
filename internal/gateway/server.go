// Package gateway is the HTTP chat host: one chat entry point plus read
// access to the recorded-interaction ledger. History crosses the wire as
// role/content records and is owned by the client across calls.
package gateway

import (
	"context"
	"net/http"

	"doppel/internal/agent"
	"doppel/internal/store"
)

// Chatter is the single agent entry point the gateway fronts.
type Chatter interface {
	Chat(ctx context.Context, message string, history []agent.Message) (string, error)
}

// Ledger exposes the recorded leads and questions for listing.
type Ledger interface {
	ListLeads(ctx context.Context) ([]store.Lead, error)
	ListQuestions(ctx context.Context) ([]store.Question, error)
}

type Server struct {
	chatter Chatter
	ledger  Ledger
	mux     *http.ServeMux
}

func NewServer(chatter Chatter, ledger Ledger) *Server {
	s := &Server{
		chatter: chatter,
		ledger:  ledger,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /v1/chat", s.handleChat)
	s.mux.HandleFunc("GET /v1/leads", s.handleListLeads)
	s.mux.HandleFunc("GET /v1/questions", s.handleListQuestions)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
