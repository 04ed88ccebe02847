// Package api exposes generation, saved-PRD and project operations over
// a REST interface.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vibespecs/vibespecs/internal/prd"
	"github.com/vibespecs/vibespecs/internal/store"
)

// Generator produces a PRD for an idea. Satisfied by *gateway.Client.
type Generator interface {
	Generate(ctx context.Context, idea string, advanced bool) (*prd.Document, error)
}

// PRDStore is the slice of the persistence adapter the API consumes.
// Satisfied by *store.Store.
type PRDStore interface {
	InsertSavedPRD(ctx context.Context, ownerID, title, userInput string, content *prd.Document) (*store.SavedPRD, error)
	ListSavedPRDs(ctx context.Context, filter store.PRDFilter) ([]store.SavedPRD, error)
	GetSavedPRD(ctx context.Context, ownerID, id string) (*store.SavedPRD, error)
	UpdateSavedPRDProject(ctx context.Context, ownerID, id string, projectID *string) error
	DeleteSavedPRD(ctx context.Context, ownerID, id string) error
	InsertProject(ctx context.Context, ownerID, name, description string) (*store.Project, error)
	ListProjects(ctx context.Context, ownerID string) ([]store.Project, error)
	DeleteProject(ctx context.Context, ownerID, id string) error
}

// Server is the REST API server.
type Server struct {
	router    *mux.Router
	generator Generator
	store     PRDStore
	logger    *log.Logger
}

// NewServer creates a server around the given collaborators. Either may
// be nil: generation endpoints answer 500 without a generator, and
// persistence endpoints answer 503 without a store.
func NewServer(generator Generator, prdStore PRDStore) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		generator: generator,
		store:     prdStore,
		logger:    log.WithPrefix("api"),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.corsMiddleware)
	api.Use(s.loggingMiddleware)

	api.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS")
	api.HandleFunc("/generate", s.handleGenerate).Methods("POST", "OPTIONS")

	api.HandleFunc("/prds", s.handleListPRDs).Methods("GET", "OPTIONS")
	api.HandleFunc("/prds", s.handleSavePRD).Methods("POST", "OPTIONS")
	api.HandleFunc("/prds/{id}", s.handleDeletePRD).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/prds/{id}/project", s.handleMovePRD).Methods("PATCH", "OPTIONS")
	api.HandleFunc("/prds/{id}/export/{format}", s.handleExportPRD).Methods("GET", "OPTIONS")

	api.HandleFunc("/projects", s.handleListProjects).Methods("GET", "OPTIONS")
	api.HandleFunc("/projects", s.handleCreateProject).Methods("POST", "OPTIONS")
	api.HandleFunc("/projects/{id}", s.handleDeleteProject).Methods("DELETE", "OPTIONS")
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.logger.Info("starting API server", "addr", addr)
	return server.ListenAndServe()
}

// corsMiddleware adds CORS headers for the browser frontend.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Owner-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request with its duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ownerID resolves the requesting owner. Authentication is delegated to
// the deployment's edge; the header carries the verified subject.
func ownerID(r *http.Request) string {
	if id := r.Header.Get("X-Owner-ID"); id != "" {
		return id
	}
	return "default"
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error envelope.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
