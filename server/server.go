// Package server exposes the CineForge generation API over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"cineforge/export"
	"cineforge/generator"
	"cineforge/ratelimit"
	"cineforge/store"
)

// Story premises shorter than this are rejected as malformed input.
const minStoryLength = 20

type Server struct {
	chain   *generator.Chain
	store   *store.Store
	limiter *ratelimit.SlidingWindow
}

func New(chain *generator.Chain, st *store.Store, limiter *ratelimit.SlidingWindow) (*Server, error) {
	if chain == nil {
		return nil, errors.New("generation chain required")
	}
	if st == nil {
		st = store.New()
	}
	return &Server{chain: chain, store: st, limiter: limiter}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/generate/{project}/latest", s.handleLatest)
	mux.HandleFunc("GET /api/generate/{project}/history", s.handleHistory)
	mux.HandleFunc("PUT /api/generate/{id}/screenplay", s.handleUpdateScreenplay)
	mux.HandleFunc("GET /api/generate/{id}/export", s.handleExport)
	mux.HandleFunc("POST /api/generate/edit-script", s.handleEditScript)
	mux.HandleFunc("POST /api/generate/storyboard", s.handleStoryboard)

	mux.HandleFunc("GET /api/callsheet/{project}", s.handleCallSheetList)
	mux.HandleFunc("POST /api/callsheet/{project}", s.handleCallSheetAdd)
	mux.HandleFunc("PUT /api/callsheet/entry/{id}", s.handleCallSheetUpdate)
	mux.HandleFunc("DELETE /api/callsheet/entry/{id}", s.handleCallSheetDelete)

	var h http.Handler = mux
	if s.limiter != nil {
		h = ratelimit.Middleware(s.limiter, h)
	}
	return logMiddleware(h)
}

// --- Handlers ---

type generateReq struct {
	ProjectID string `json:"project_id"`
	Story     string `json:"story"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(strings.TrimSpace(req.Story)) < minStoryLength {
		errorJSON(w, http.StatusBadRequest, "story must be at least 20 characters")
		return
	}

	outcome := s.chain.Generate(r.Context(), req.Story)

	// Persistence is fire-and-forget: a store failure must not fail the
	// generation the caller is waiting on.
	saved, err := s.store.SaveGeneration(store.Generation{
		ProjectID:   req.ProjectID,
		StoryInput:  req.Story,
		Screenplay:  outcome.Package.Screenplay,
		ShotDesign:  outcome.Package.ShotDesign,
		SoundDesign: outcome.Package.SoundDesign,
		Provider:    outcome.Provider,
	})
	if err != nil {
		log.Printf("[server] could not persist generation: %v", err)
		saved = store.Generation{
			ProjectID:   req.ProjectID,
			StoryInput:  req.Story,
			Screenplay:  outcome.Package.Screenplay,
			ShotDesign:  outcome.Package.ShotDesign,
			SoundDesign: outcome.Package.SoundDesign,
			Provider:    outcome.Provider,
		}
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.LatestGeneration(r.PathValue("project"))
	if err != nil {
		errorJSON(w, http.StatusNotFound, "no generations found for this project")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ProjectGenerations(r.PathValue("project")))
}

type screenplayUpdateReq struct {
	Screenplay string `json:"screenplay"`
}

func (s *Server) handleUpdateScreenplay(w http.ResponseWriter, r *http.Request) {
	var req screenplayUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.store.UpdateScreenplay(r.PathValue("id"), req.Screenplay)
	if err != nil {
		errorJSON(w, http.StatusNotFound, "generation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": updated.ID})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Generation(r.PathValue("id"))
	if err != nil {
		errorJSON(w, http.StatusNotFound, "generation not found")
		return
	}
	pkg := generator.ProductionPackage{
		Screenplay:  g.Screenplay,
		ShotDesign:  g.ShotDesign,
		SoundDesign: g.SoundDesign,
	}
	html, err := export.HTML(g.StoryInput, pkg)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

type editReq struct {
	Script string `json:"script"`
	Action string `json:"action"`
	Tone   string `json:"tone"`
}

type editResp struct {
	Script string `json:"script"`
	Action string `json:"action"`
}

func (s *Server) handleEditScript(w http.ResponseWriter, r *http.Request) {
	var req editReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	edited, err := s.chain.Edit(r.Context(), req.Script, req.Action, req.Tone)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, editResp{Script: edited, Action: req.Action})
}

type storyboardReq struct {
	ShotDesign []generator.SceneShots `json:"shot_design"`
}

func (s *Server) handleStoryboard(w http.ResponseWriter, r *http.Request) {
	var req storyboardReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, generator.StoryboardPanels(req.ShotDesign))
}

// --- Call sheet ---

type callSheetEntryReq struct {
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Notes          string   `json:"notes"`
	AvailableDates []string `json:"available_dates"`
}

type callSheetPatchReq struct {
	Name           *string   `json:"name"`
	Role           *string   `json:"role"`
	Phone          *string   `json:"phone"`
	Email          *string   `json:"email"`
	Notes          *string   `json:"notes"`
	AvailableDates *[]string `json:"available_dates"`
}

func (s *Server) handleCallSheetList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.CallSheet(r.PathValue("project")))
}

func (s *Server) handleCallSheetAdd(w http.ResponseWriter, r *http.Request) {
	var req callSheetEntryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		errorJSON(w, http.StatusBadRequest, "name is required")
		return
	}
	entry := s.store.AddCallSheetEntry(r.PathValue("project"), store.CallSheetEntry{
		Name:           req.Name,
		Role:           req.Role,
		Phone:          req.Phone,
		Email:          req.Email,
		Notes:          req.Notes,
		AvailableDates: req.AvailableDates,
	})
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleCallSheetUpdate(w http.ResponseWriter, r *http.Request) {
	var req callSheetPatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.store.UpdateCallSheetEntry(r.PathValue("id"), store.CallSheetPatch{
		Name:           req.Name,
		Role:           req.Role,
		Phone:          req.Phone,
		Email:          req.Email,
		Notes:          req.Notes,
		AvailableDates: req.AvailableDates,
	})
	if err != nil {
		errorJSON(w, http.StatusNotFound, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleCallSheetDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCallSheetEntry(r.PathValue("id")); err != nil {
		errorJSON(w, http.StatusNotFound, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[http] %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
