package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vibespecs/vibespecs/internal/export"
	"github.com/vibespecs/vibespecs/internal/gateway"
	"github.com/vibespecs/vibespecs/internal/prd"
	"github.com/vibespecs/vibespecs/internal/store"
)

// decodePRDBody parses the PRD payload of a save request.
func decodePRDBody(raw json.RawMessage) (*prd.Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("prd required")
	}
	doc, err := prd.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid prd: %w", err)
	}
	return doc, nil
}

// generateRequest mirrors the frontend's generate call.
type generateRequest struct {
	Idea         string `json:"idea"`
	AdvancedMode bool   `json:"advancedMode"`
}

// handleGenerate runs one generation against the gateway and returns the
// PRD. Gateway failures are mapped onto HTTP statuses by error kind.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.writeError(w, http.StatusInternalServerError, "AI service not configured")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := s.generator.Generate(r.Context(), req.Idea, req.AdvancedMode)
	if err != nil {
		s.logger.Error("generation failed", "error", err)
		s.writeError(w, statusForGenerationError(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"prd": doc})
}

// statusForGenerationError maps the gateway error taxonomy onto HTTP
// statuses for the frontend.
func statusForGenerationError(err error) int {
	switch gateway.KindOf(err) {
	case gateway.KindInvalidInput:
		return http.StatusBadRequest
	case gateway.KindRateLimited:
		return http.StatusTooManyRequests
	case gateway.KindQuotaExceeded:
		return http.StatusPaymentRequired
	case gateway.KindNotConfigured:
		return http.StatusInternalServerError
	case gateway.KindMalformedResponse, gateway.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// requireStore answers 503 when persistence is not configured.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return false
	}
	return true
}

// savePRDRequest mirrors the frontend's save dialog.
type savePRDRequest struct {
	Title     string          `json:"title"`
	UserInput string          `json:"userInput"`
	PRD       json.RawMessage `json:"prd"`
}

func (s *Server) handleSavePRD(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req savePRDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		s.writeError(w, http.StatusBadRequest, "title required")
		return
	}

	doc, err := decodePRDBody(req.PRD)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := s.store.InsertSavedPRD(r.Context(), ownerID(r), req.Title, req.UserInput, doc)
	if err != nil {
		s.storeError(w, "save PRD", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListPRDs(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	filter := store.PRDFilter{OwnerID: ownerID(r)}
	if projectID := r.URL.Query().Get("projectId"); projectID != "" {
		if projectID == "none" {
			filter.Unfiled = true
		} else {
			filter.ProjectID = &projectID
		}
	}

	prds, err := s.store.ListSavedPRDs(r.Context(), filter)
	if err != nil {
		s.storeError(w, "list PRDs", err)
		return
	}
	s.writeJSON(w, http.StatusOK, prds)
}

func (s *Server) handleDeletePRD(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.store.DeleteSavedPRD(r.Context(), ownerID(r), id); err != nil {
		s.storeError(w, "delete PRD", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// movePRDRequest assigns a saved PRD to a project; null unfiles it.
type movePRDRequest struct {
	ProjectID *string `json:"projectId"`
}

func (s *Server) handleMovePRD(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req movePRDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.store.UpdateSavedPRDProject(r.Context(), ownerID(r), id, req.ProjectID); err != nil {
		s.storeError(w, "move PRD", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportPRD renders one projection of a saved PRD as plain text.
// The markdown format is served as a download with its fixed filename.
func (s *Server) handleExportPRD(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	vars := mux.Vars(r)
	saved, err := s.store.GetSavedPRD(r.Context(), ownerID(r), vars["id"])
	if err != nil {
		s.storeError(w, "export PRD", err)
		return
	}

	format := export.Format(vars["format"])
	text, err := export.Render(saved.Content, format)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch format {
	case export.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case export.FormatMarkdown:
		w.Header().Set("Content-Type", "text/markdown")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.MarkdownFilename))
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// createProjectRequest mirrors the frontend's project dialog.
type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name required")
		return
	}

	project, err := s.store.InsertProject(r.Context(), ownerID(r), req.Name, req.Description)
	if err != nil {
		s.storeError(w, "create project", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	projects, err := s.store.ListProjects(r.Context(), ownerID(r))
	if err != nil {
		s.storeError(w, "list projects", err)
		return
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.store.DeleteProject(r.Context(), ownerID(r), id); err != nil {
		s.storeError(w, "delete project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// storeError maps persistence failures onto HTTP statuses.
func (s *Server) storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.logger.Error("store operation failed", "op", op, "error", err)
	s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to %s", op))
}
