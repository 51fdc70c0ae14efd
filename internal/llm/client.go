package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Message roles in a conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prior turn sent along with a prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	History      []Message // oldest first
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backend can be called.
	Available(ctx context.Context) bool
}

// backend performs a single provider call. Timeouts, observation and
// error classification are handled by client.
type backend interface {
	chat(ctx context.Context, call backendCall) (text, model string, err error)
	available(ctx context.Context) bool
}

type backendCall struct {
	Model       string
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// client wraps a backend with per-task defaults. Calls are never retried.
type client struct {
	cfg      LLMConfig
	backend  backend
	observer Observer
}

// NewClient builds the client for cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	var b backend
	switch cfg.Provider {
	case ProviderOllama, "":
		b = newOllamaBackend(cfg.Endpoint)
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai: %w", ErrUnauthorized)
		}
		b = newOpenAIBackend(cfg.Endpoint, cfg.APIKey)
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini: %w", ErrUnauthorized)
		}
		gb, err := newGeminiBackend(ctx, cfg.Endpoint, cfg.APIKey)
		if err != nil {
			return nil, err
		}
		b = gb
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	return &client{cfg: cfg, backend: b, observer: observer}, nil
}

// NewOllamaClient creates an LLMClient that talks to a local Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{cfg: cfg, backend: newOllamaBackend(cfg.Endpoint), observer: observer}
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	msgs := make([]Message, 0, len(req.History)+1)
	msgs = append(msgs, req.History...)
	msgs = append(msgs, Message{Role: RoleUser, Content: req.UserPrompt})

	text, model, err := c.backend.chat(ctx, backendCall{
		Model:       c.cfg.Model,
		System:      req.SystemPrompt,
		Messages:    msgs,
		Temperature: temp,
		MaxTokens:   maxTok,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("%w: empty response", ErrGeneration)
	}
	latency := time.Since(start).Milliseconds()

	if err != nil {
		err = classify(ctx, err)
		c.observer.OnCallComplete(LLMCallEvent{
			Task:      req.Task,
			Provider:  c.cfg.Provider,
			Model:     c.cfg.Model,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: errorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  c.cfg.Provider,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   true,
	})
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
}

func (c *client) Available(ctx context.Context) bool {
	return c.backend.available(ctx)
}

// statusError is a non-200 reply from an HTTP backend.
type statusError struct {
	provider string
	status   int
	body     string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.provider, e.status, e.body)
}

// classify maps a backend failure onto the package's sentinel errors. A
// caller's cancellation is passed through as context.Canceled; only an
// expired deadline counts as a timeout.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTimeout),
		errors.Is(err, ErrUnavailable), errors.Is(err, ErrGeneration):
		return err
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil, errors.Is(err, context.Canceled):
		return fmt.Errorf("llm request cancelled: %w", context.Canceled)
	case isConnectionError(err):
		return ErrUnavailable
	}

	status := statusOf(err)
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if mentionsAPIKey(err.Error()) {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return fmt.Errorf("%w: %v", ErrGeneration, err)
}

// statusOf extracts the HTTP status of a backend reply, or 0.
func statusOf(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.status
	}
	var ae genai.APIError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return 0
}

func mentionsAPIKey(msg string) bool {
	lower := strings.ToLower(msg)
	for _, s := range []string{"api_key", "api key", "unauthenticated", "permission_denied"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	return false
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrGeneration):
		return "GENERATION"
	default:
		return "UNKNOWN"
	}
}
