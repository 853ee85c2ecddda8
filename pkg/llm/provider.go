package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultModelID     = "1.0"
	DefaultProjectID   = "legal-docs"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 500
)

var ErrEmptyCompletion = errors.New("completion provider returned no text")

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// CompletionRequest carries one prompt plus the context it should be
// answered against.
type CompletionRequest struct {
	ModelID     string
	ProjectID   string
	Context     string
	History     []Message
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// WithDefaults fills unset tuning fields.
func (r CompletionRequest) WithDefaults() CompletionRequest {
	if r.ModelID == "" {
		r.ModelID = DefaultModelID
	}
	if r.ProjectID == "" {
		r.ProjectID = DefaultProjectID
	}
	if r.Temperature == 0 {
		r.Temperature = DefaultTemperature
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	return r
}

// Messages flattens the request into a chat transcript: the context as a
// system message, the history, then the prompt as the final user turn.
func (r CompletionRequest) Messages() []Message {
	out := make([]Message, 0, len(r.History)+2)
	if r.Context != "" {
		out = append(out, Message{Role: "system", Content: r.Context})
	}
	out = append(out, r.History...)
	return append(out, Message{Role: "user", Content: r.Prompt})
}

type Completion struct {
	Text           string
	ModelVersion   string
	TokensUsed     int
	ProcessingTime time.Duration
}

// FormatProcessingTime renders the duration the way clients display it, e.g. "1.2s".
func (c Completion) FormatProcessingTime() string {
	return fmt.Sprintf("%.1fs", c.ProcessingTime.Seconds())
}

// CompletionProvider defines the contract for any text-completion backend
type CompletionProvider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
