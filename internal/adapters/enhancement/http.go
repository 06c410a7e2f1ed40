package enhancement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"schema-engine/internal/common/errors"
)

// minUsableLength guards against degenerate completions replacing real copy.
const minUsableLength = 20

// HTTPAdapter calls a text-completion endpoint. Single attempt per call; the
// context carries the budget and any failure surfaces as unavailability to
// the generator.
type HTTPAdapter struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewHTTPAdapter(baseURL, apiKey, model string, timeout time.Duration) *HTTPAdapter {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// completionRequest is the wire format of the completion endpoint.
type completionRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type completionResponse struct {
	Text string `json:"text"`
}

func (a *HTTPAdapter) Enhance(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(completionRequest{
		Model:     a.model,
		Prompt:    a.prompt(req),
		MaxTokens: 250,
	})
	if err != nil {
		return Unavailable(), errors.NewEnhancementUnavailableError(err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/completions", bytes.NewReader(body))
	if err != nil {
		return Unavailable(), errors.NewEnhancementUnavailableError(err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return Unavailable(), errors.NewEnhancementTimeoutError(req.Field)
		}
		return Unavailable(), errors.NewEnhancementUnavailableError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unavailable(), errors.NewEnhancementUnavailableError(fmt.Sprintf("completion endpoint returned %d", resp.StatusCode))
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return Unavailable(), errors.NewEnhancementUnavailableError(err.Error())
	}

	text := strings.TrimSpace(completion.Text)
	if len(text) < minUsableLength || strings.Contains(text, "I cannot") {
		// Degenerate completion: keep the original copy.
		return Unavailable(), nil
	}

	return &Response{Text: text, Available: true}, nil
}

func (a *HTTPAdapter) prompt(req *Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rewrite the %s of the product %q for search visibility.\n", req.Field, req.Title)
	if req.Category != "" {
		fmt.Fprintf(&sb, "Category: %s\n", req.Category)
	}
	if len(req.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(req.Tags, ", "))
	}
	fmt.Fprintf(&sb, "Original text: %s", req.Original)
	return sb.String()
}
