package llm

import "errors"

var (
	// ErrUnavailable indicates the model server is unreachable or failing
	// with a 5xx status.
	ErrUnavailable = errors.New("llm server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrUnauthorized indicates a missing or rejected API key.
	ErrUnauthorized = errors.New("llm api key is invalid or missing")

	// ErrGeneration covers every other failed generation, such as 4xx
	// statuses, malformed bodies or empty answers.
	ErrGeneration = errors.New("llm generation failed")
)
