package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cineforge/generator"
	"cineforge/ratelimit"
	"cineforge/store"
)

const lighthouseStory = "A lighthouse keeper discovers a message in a bottle that predicts his own death."

func newTestServer(t *testing.T, clients ...generator.Client) (*Server, http.Handler) {
	t.Helper()
	srv, err := New(generator.NewChain(clients...), store.New(), nil)
	if err != nil {
		t.Fatalf("server construction failed: %v", err)
	}
	return srv, srv.Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerateTemplateOnly(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/generate",
		`{"project_id":"p1","story":"`+lighthouseStory+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var g store.Generation
	if err := json.NewDecoder(rec.Body).Decode(&g); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if g.Provider != generator.ProviderTemplate {
		t.Fatalf("provider = %q, want template", g.Provider)
	}
	if len(g.ShotDesign) != 2 {
		t.Fatalf("shot design scenes = %d, want 2", len(g.ShotDesign))
	}
	if g.ShotDesign[0].ID != "scene-01" || g.ShotDesign[1].ID != "scene-02" {
		t.Fatalf("scene ids = %s/%s", g.ShotDesign[0].ID, g.ShotDesign[1].ID)
	}
	if !strings.Contains(g.Screenplay, lighthouseStory) {
		t.Fatal("screenplay should contain the literal story")
	}
	if g.ID == "" {
		t.Fatal("generation should be persisted with an id")
	}
}

func TestGenerateStoryTooShort(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/generate", `{"project_id":"p1","story":"too short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateThenLatestAndHistory(t *testing.T) {
	_, h := newTestServer(t)

	doJSON(t, h, http.MethodPost, "/api/generate", `{"project_id":"p1","story":"`+lighthouseStory+`"}`)
	doJSON(t, h, http.MethodPost, "/api/generate", `{"project_id":"p1","story":"`+lighthouseStory+` Again, with feeling."}`)

	rec := doJSON(t, h, http.MethodGet, "/api/generate/p1/latest", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("latest status = %d, want 200", rec.Code)
	}
	var latest store.Generation
	_ = json.NewDecoder(rec.Body).Decode(&latest)
	if !strings.Contains(latest.StoryInput, "Again, with feeling.") {
		t.Fatal("latest should be the second generation")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/generate/p1/history", "")
	var history []store.Generation
	_ = json.NewDecoder(rec.Body).Decode(&history)
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}

	rec = doJSON(t, h, http.MethodGet, "/api/generate/unknown/latest", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown project status = %d, want 404", rec.Code)
	}
}

func TestUpdateScreenplayAndExport(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/generate", `{"project_id":"p1","story":"`+lighthouseStory+`"}`)
	var g store.Generation
	_ = json.NewDecoder(rec.Body).Decode(&g)

	rec = doJSON(t, h, http.MethodPut, "/api/generate/"+g.ID+"/screenplay", `{"screenplay":"FADE IN:\n\nA new draft."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/generate/"+g.ID+"/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("export content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "A new draft.") {
		t.Fatal("export should reflect the updated screenplay")
	}

	rec = doJSON(t, h, http.MethodPut, "/api/generate/missing/screenplay", `{"screenplay":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing id status = %d, want 404", rec.Code)
	}
}

func TestEditScriptEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/generate/edit-script",
		`{"script":"INT. HOUSE - DAY\n\nJOHN\nHello.","action":"tone","tone":"Melancholic"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Script string `json:"script"`
		Action string `json:"action"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Action != "tone" {
		t.Fatalf("action = %q, want tone", resp.Action)
	}
	if !strings.Contains(resp.Script, "INT. HOUSE - DAY") {
		t.Fatal("scene heading must survive the tone edit")
	}
	if !strings.Contains(resp.Script, "A sense of loss permeates the air.") {
		t.Fatal("a Melancholic stage direction should be inserted")
	}

	rec = doJSON(t, h, http.MethodPost, "/api/generate/edit-script", `{"script":"x","action":"explode"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid action status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/generate/edit-script", `{"script":"x","action":"tone"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing tone status = %d, want 400", rec.Code)
	}
}

func TestStoryboardEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	body := `{"shot_design":[{"id":"scene-01","scene_title":"Opening","shots":[{"number":1,"description":"Wide shot"},{"number":2,"description":"Close-up"}]}]}`
	rec := doJSON(t, h, http.MethodPost, "/api/generate/storyboard", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var panels []generator.Panel
	_ = json.NewDecoder(rec.Body).Decode(&panels)
	if len(panels) != 2 {
		t.Fatalf("panel count = %d, want 2", len(panels))
	}
	if !strings.HasSuffix(panels[0].Prompt, "movie production art") {
		t.Fatalf("prompt suffix missing: %q", panels[0].Prompt)
	}
}

func TestCallSheetEndpoints(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/callsheet/p1", `{"name":"Ada","role":"Gaffer"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want 201", rec.Code)
	}
	var entry store.CallSheetEntry
	_ = json.NewDecoder(rec.Body).Decode(&entry)

	rec = doJSON(t, h, http.MethodGet, "/api/callsheet/p1", "")
	var entries []store.CallSheetEntry
	_ = json.NewDecoder(rec.Body).Decode(&entries)
	if len(entries) != 1 {
		t.Fatalf("list length = %d, want 1", len(entries))
	}

	rec = doJSON(t, h, http.MethodPut, "/api/callsheet/entry/"+entry.ID, `{"role":"Key Grip"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", rec.Code)
	}
	var updated store.CallSheetEntry
	_ = json.NewDecoder(rec.Body).Decode(&updated)
	if updated.Role != "Key Grip" || updated.Name != "Ada" {
		t.Fatalf("updated = %+v", updated)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/callsheet/entry/"+entry.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/callsheet/p1", `{"role":"anonymous"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("nameless entry status = %d, want 400", rec.Code)
	}
}

func TestRateLimitedRoutes(t *testing.T) {
	limiter := ratelimit.New(1, time.Minute)
	srv, err := New(generator.NewChain(), store.New(), limiter)
	if err != nil {
		t.Fatalf("server construction failed: %v", err)
	}
	h := srv.Routes()

	rec := doJSON(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	var body struct {
		RetryAfter int `json:"retry_after_seconds"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body.RetryAfter < 1 {
		t.Fatalf("retry hint = %d, want >= 1", body.RetryAfter)
	}
}

func TestGenerateUsesProviderWhenAvailable(t *testing.T) {
	client := &generator.ScriptedClient{ID: "gemini", Response: `{"screenplay":"INT. TEST - DAY","shot_design":[],"sound_design":[]}`}
	_, h := newTestServer(t, client)

	rec := doJSON(t, h, http.MethodPost, "/api/generate", `{"project_id":"p1","story":"`+lighthouseStory+`"}`)
	var g store.Generation
	_ = json.NewDecoder(rec.Body).Decode(&g)
	if g.Provider != "gemini" {
		t.Fatalf("provider = %q, want gemini", g.Provider)
	}
	if client.Calls != 1 {
		t.Fatalf("provider calls = %d, want 1", client.Calls)
	}
}
