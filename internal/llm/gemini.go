package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiBackend struct {
	client *genai.Client
	apiKey string
}

func newGeminiBackend(ctx context.Context, endpoint, apiKey string) (*geminiBackend, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: endpoint}
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiBackend{client: c, apiKey: apiKey}, nil
}

func (b *geminiBackend) chat(ctx context.Context, call backendCall) (string, string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(call.Temperature)),
	}
	if call.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: call.System},
			},
		}
	}

	result, err := b.client.Models.GenerateContent(ctx, call.Model, geminiContents(call.Messages), config)
	if err != nil {
		return "", "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), call.Model, nil
}

func (b *geminiBackend) available(context.Context) bool {
	return b.apiKey != ""
}

// geminiContents maps chat turns onto Gemini roles; assistant turns are
// "model" turns.
func geminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Content, role))
	}
	return out
}
