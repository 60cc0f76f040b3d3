package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// GeminiClient calls the Gemini generateContent REST endpoint. Gemini has no
// official Go SDK worth carrying; the REST surface is one POST with the key
// passed as a query parameter.
type GeminiClient struct {
	APIKey   string
	Model    string
	Endpoint string // optional override, used by tests
	client   *http.Client
}

func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GeminiClient{
		APIKey: apiKey,
		Model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (g *GeminiClient) Name() string { return "gemini" }

func (g *GeminiClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt.System + "\n\n" + prompt.User}}},
		},
		"generationConfig": map[string]any{
			"temperature":     0.7,
			"maxOutputTokens": 8192,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := g.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", g.Model)
	}
	endpoint += "?key=" + url.QueryEscape(g.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: HTTP %d: %s", resp.StatusCode, truncate(string(data), 300))
	}

	text := gjson.GetBytes(data, "candidates.0.content.parts.0.text").String()
	if text == "" {
		return "", errors.New("gemini: response missing candidate text")
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
