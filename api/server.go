package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/poiesic/finanswer/core"
	"github.com/poiesic/finanswer/delivery"
	"github.com/poiesic/finanswer/session"
)

// Answerer runs one query with conversation history through the answer
// pipeline.
type Answerer interface {
	Answer(ctx context.Context, query string, history []core.Turn) string
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           ":8000",
		AllowedOrigins: []string{"*"},
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
	}
}

// Server is the HTTP front of the answer pipeline.
type Server struct {
	assistant  Answerer
	sessions   *session.Store
	dispatcher *delivery.Dispatcher
	server     *http.Server
	router     *mux.Router
	logger     *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewServer creates the HTTP server around an answer pipeline.
func NewServer(config ServerConfig, assistant Answerer, sessions *session.Store, dispatcher *delivery.Dispatcher, opts ...ServerOption) (*Server, error) {
	if assistant == nil {
		return nil, ErrAnswererRequired
	}
	if sessions == nil {
		sessions = session.NewStore()
	}
	if dispatcher == nil {
		dispatcher = delivery.NewDispatcher()
	}

	s := &Server{
		assistant:  assistant,
		sessions:   sessions,
		dispatcher: dispatcher,
		router:     mux.NewRouter(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:         config.Addr,
		Handler:      c.Handler(s.router),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/ask", s.handleAsk).Methods("POST")
	s.router.HandleFunc("/", s.handleRoot).Methods("GET")
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Query     string `json:"query"`
	Channel   string `json:"channel"`
	Recipient string `json:"recipient,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// AskResponse is the body returned by POST /ask.
type AskResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := ValidateQuery(req.Query); err != nil {
		s.logger.Warn("rejected query", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	query := SanitizeQuery(req.Query)

	sessionID := s.sessions.Ensure(req.SessionID)
	history := s.sessions.History(sessionID)

	response := s.assistant.Answer(r.Context(), query, history)

	s.sessions.Append(sessionID, core.Turn{Query: query, Answer: response})
	s.dispatcher.Dispatch(req.Channel, response, req.Recipient)

	writeJSON(w, http.StatusOK, AskResponse{Response: response, SessionID: sessionID})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Financial Q&A API. Use the /ask endpoint to ask questions.",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to encode response", "err", err)
	}
}
