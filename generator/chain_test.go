package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const lighthouseStory = "A lighthouse keeper discovers a message in a bottle that predicts his own death."

func TestGenerateFirstSuccessWins(t *testing.T) {
	a := &ScriptedClient{ID: "gemini", Response: validPackageJSON}
	b := &ScriptedClient{ID: "huggingface", Response: validPackageJSON}
	chain := NewChain(a, b)

	outcome := chain.Generate(context.Background(), lighthouseStory)
	if outcome.Provider != "gemini" {
		t.Fatalf("provider = %q, want gemini", outcome.Provider)
	}
	if a.Calls != 1 {
		t.Fatalf("first tier calls = %d, want 1", a.Calls)
	}
	if b.Calls != 0 {
		t.Fatalf("second tier should never be invoked, got %d calls", b.Calls)
	}
}

func TestGenerateAdvancesPastFailures(t *testing.T) {
	tests := []struct {
		name  string
		first *ScriptedClient
	}{
		{"provider error", &ScriptedClient{ID: "gemini", Err: errors.New("connection refused")}},
		{"timeout", &ScriptedClient{ID: "gemini", Err: context.DeadlineExceeded}},
		{"unparsable text", &ScriptedClient{ID: "gemini", Response: "I cannot answer in JSON, sorry."}},
		{"wrong shape", &ScriptedClient{ID: "gemini", Response: `{"screenplay": "ok", "shot_design": []}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			second := &ScriptedClient{ID: "huggingface", Response: validPackageJSON}
			chain := NewChain(tt.first, second)
			outcome := chain.Generate(context.Background(), lighthouseStory)
			if outcome.Provider != "huggingface" {
				t.Fatalf("provider = %q, want huggingface", outcome.Provider)
			}
			if second.Calls != 1 {
				t.Fatalf("second tier calls = %d, want 1", second.Calls)
			}
		})
	}
}

func TestGenerateFallsToTemplateWhenAllFail(t *testing.T) {
	a := &ScriptedClient{ID: "gemini", Err: errors.New("boom")}
	b := &ScriptedClient{ID: "huggingface", Response: "not json"}
	chain := NewChain(a, b)

	outcome := chain.Generate(context.Background(), lighthouseStory)
	if outcome.Provider != ProviderTemplate {
		t.Fatalf("provider = %q, want template", outcome.Provider)
	}
	if len(outcome.Package.ShotDesign) != 2 {
		t.Fatalf("template shot design has %d scenes, want 2", len(outcome.Package.ShotDesign))
	}
}

func TestGenerateWithNoProvidersConfigured(t *testing.T) {
	chain := NewChain()
	outcome := chain.Generate(context.Background(), lighthouseStory)

	if outcome.Provider != ProviderTemplate {
		t.Fatalf("provider = %q, want template", outcome.Provider)
	}
	if outcome.Package.Screenplay == "" {
		t.Fatal("screenplay must never be empty")
	}
	ids := []string{outcome.Package.ShotDesign[0].ID, outcome.Package.ShotDesign[1].ID}
	if ids[0] != "scene-01" || ids[1] != "scene-02" {
		t.Fatalf("scene ids = %v, want [scene-01 scene-02]", ids)
	}
	if !strings.Contains(outcome.Package.Screenplay, lighthouseStory) {
		t.Fatal("screenplay should embed the literal story text")
	}
}
