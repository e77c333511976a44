package llm

import (
	"context"
	"fmt"
)

// Provider normalizes one backend model family behind a common
// capability contract: render the instruction prompt, encode it into
// the backend's payload shape, and pull the generated text back out of
// the backend's response envelope. Providers hold no state beyond
// generation parameters; the orchestrator never learns which variant
// is active.
type Provider interface {
	// BuildPrompt renders the fixed instruction template around the
	// extracted text.
	BuildPrompt(extractedText string) string
	// BuildRequest encodes the prompt plus generation parameters in
	// the backend's expected payload shape.
	BuildRequest(prompt string) ([]byte, error)
	// ParseResponse extracts the generated text from the backend's
	// response envelope.
	ParseResponse(raw []byte) (string, error)
	// ModelFamily is a static descriptor with no side effects.
	ModelFamily() string
	// ModelID is the backend model identifier to invoke.
	ModelID() string
}

// Invoker sends an encoded payload to the inference service and
// returns the raw response envelope.
type Invoker interface {
	Invoke(ctx context.Context, modelID string, payload []byte) ([]byte, error)
}

// GenerationConfig carries the per-provider generation parameters.
type GenerationConfig struct {
	ModelID     string
	MaxTokens   int
	Temperature float32
}

// InvokeError carries a backend error code alongside the message so
// the classification stage can record both.
type InvokeError struct {
	Code    string
	Message string
}

func (e *InvokeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}
