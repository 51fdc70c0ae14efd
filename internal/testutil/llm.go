package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/bizpulse/internal/llm"
)

// FakeLLM records every request and replies with Text or fails with Err.
type FakeLLM struct {
	mu       sync.Mutex
	Text     string
	Err      error
	requests []llm.GenerateRequest
}

func (f *FakeLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	return &llm.GenerateResponse{Text: f.Text, Model: "fake"}, nil
}

func (f *FakeLLM) Available(context.Context) bool { return f.Err == nil }

// Requests returns a copy of the requests seen so far.
func (f *FakeLLM) Requests() []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]llm.GenerateRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Last returns the most recent request; ok is false when none was made.
func (f *FakeLLM) Last() (req llm.GenerateRequest, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return llm.GenerateRequest{}, false
	}
	return f.requests[len(f.requests)-1], true
}
