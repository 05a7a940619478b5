package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBackendURL = "http://127.0.0.1:5001"

// Backend is the external emotion model, treated as an opaque
// text -> (label, confidence) function.
type Backend interface {
	Classify(ctx context.Context, text string) (label string, confidence float64, err error)
}

// HTTPBackend calls an emotion-inference service over HTTP JSON.
type HTTPBackend struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPBackend constructs a client for the inference service at baseURL.
// timeout bounds every request; classification is the only slow step in the
// request path and must not hang it.
func NewHTTPBackend(baseURL string, timeout time.Duration) *HTTPBackend {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBackendURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPBackend{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type backendErrorResponse struct {
	Error string `json:"error"`
}

// Classify sends the text to the model and returns its top label and score.
func (b *HTTPBackend) Classify(ctx context.Context, text string) (string, float64, error) {
	var resp classifyResponse
	if err := b.doJSON(ctx, "/classify", classifyRequest{Text: text}, &resp); err != nil {
		return "", 0, err
	}
	if resp.Label == "" {
		return "", 0, fmt.Errorf("classifier response missing label")
	}
	return resp.Label, resp.Score, nil
}

// Ping verifies the inference service is up and its model is loaded.
// An unreachable model is a fatal startup precondition, not a per-request
// recoverable error; main calls this before serving.
func (b *HTTPBackend) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("classifier health check failed: %s", resp.Status)
	}
	return nil
}

func (b *HTTPBackend) doJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp backendErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("classifier api error: %s", errResp.Error)
		}
		return fmt.Errorf("classifier api error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
