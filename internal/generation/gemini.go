package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Model produces text for a single prompt. Implementations classify
// quota rejections as *RateLimitedError.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Compile-time interface check.
var _ Model = (*GeminiModel)(nil)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// GeminiConfig selects the key, model and endpoint of the Gemini API.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty = Google's endpoint
}

// GeminiModel calls generateContent through the Google Gen AI SDK.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates a Gemini API client.
func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating client: %v", ErrGeneration, err)
	}
	return &GeminiModel{client: client, model: model}, nil
}

// GenerateText sends prompt as a single user turn and returns the text of
// the first candidate.
func (m *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(err)
	}
	return resp.Text(), nil
}

// classify maps SDK errors onto RateLimitedError or ErrGeneration.
// Cancellation passes through untouched.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	code, status, msg := 0, "", err.Error()
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code, status, msg = apiErr.Code, apiErr.Status, apiErr.Message
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code, status, msg = apiErrPtr.Code, apiErrPtr.Status, apiErrPtr.Message
	}

	if isQuota(code, status, msg) {
		return &RateLimitedError{StatusCode: code, Err: err}
	}
	return fmt.Errorf("%w: %w", ErrGeneration, err)
}

// isQuota recognizes quota errors by status first and falls back to the
// message, which is all some transport errors carry.
func isQuota(code int, status, msg string) bool {
	if code == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED" {
		return true
	}
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "429") ||
		strings.Contains(lower, "quota") ||
		strings.Contains(lower, "rate limit")
}
