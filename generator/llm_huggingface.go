package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// HuggingFaceClient calls the HuggingFace Inference API for instruct models.
// The prompt is wrapped in [INST] markers; the API answers either a bare
// object or a single-element array depending on the model.
type HuggingFaceClient struct {
	Token    string
	Model    string
	Endpoint string // optional override, used by tests
	client   *http.Client
}

func NewHuggingFaceClient(token, model string, timeout time.Duration) *HuggingFaceClient {
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.2"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HuggingFaceClient{
		Token:  token,
		Model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (h *HuggingFaceClient) Name() string { return "huggingface" }

func (h *HuggingFaceClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	payload := map[string]any{
		"inputs": fmt.Sprintf("<s>[INST]\n%s\n\n%s\n[/INST]", prompt.System, prompt.User),
		"parameters": map[string]any{
			"max_new_tokens":   4096,
			"temperature":      0.7,
			"return_full_text": false,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := h.Endpoint
	if endpoint == "" {
		endpoint = "https://api-inference.huggingface.co/models/" + h.Model
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+h.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface: HTTP %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	text := gjson.GetBytes(data, "0.generated_text").String()
	if text == "" {
		text = gjson.GetBytes(data, "generated_text").String()
	}
	if text == "" {
		return "", errors.New("huggingface: response missing generated text")
	}
	return text, nil
}
