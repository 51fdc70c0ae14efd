package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// openAIBackend speaks the chat completions API, which OpenAI and most
// hosted gateways share.
type openAIBackend struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func newOpenAIBackend(endpoint, apiKey string) *openAIBackend {
	return &openAIBackend{endpoint: endpoint, apiKey: apiKey, http: &http.Client{}}
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (b *openAIBackend) chat(ctx context.Context, call backendCall) (string, string, error) {
	msgs := call.Messages
	if call.System != "" {
		msgs = append([]Message{{Role: "system", Content: call.System}}, msgs...)
	}
	data, err := json.Marshal(chatCompletionRequest{
		Model:       call.Model,
		Messages:    msgs,
		Temperature: call.Temperature,
		MaxTokens:   call.MaxTokens,
	})
	if err != nil {
		return "", "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	res, err := b.http.Do(req)
	if err != nil {
		return "", "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", "", &statusError{provider: "openai", status: res.StatusCode, body: string(body)}
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", fmt.Errorf("decoding response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("%w: no choices in response", ErrGeneration)
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}

func (b *openAIBackend) available(context.Context) bool {
	return b.apiKey != ""
}
