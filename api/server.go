package api

import (
	"net/http"

	"go.uber.org/zap"
)

// Server represents the API server
type Server struct {
	handlers *Handlers
	port     string
}

// NewServer creates a new API server
func NewServer(handlers *Handlers, port string) *Server {
	return &Server{
		handlers: handlers,
		port:     port,
	}
}

// Start starts the API server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Register API endpoints
	mux.HandleFunc("/api/search", s.handlers.SearchHandler)
	mux.HandleFunc("/api/providers", s.handlers.ProvidersHandler)
	mux.HandleFunc("/api/search/suggestions", s.handlers.SuggestionsHandler)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	s.handlers.logger.Info("starting API server", zap.String("port", s.port))
	return http.ListenAndServe(":"+s.port, mux)
}
