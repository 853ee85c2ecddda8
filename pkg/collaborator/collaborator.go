// Package collaborator defines the contracts of the external services the
// review core depends on: the suggestion source and the analysis backend.
package collaborator

import (
	"context"
	"errors"

	"compliance-review-be/pkg/catalog"
)

var (
	// ErrCollaboratorUnavailable covers transport failures and non-success statuses.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	// ErrMalformedResponse is returned when a payload lacks required fields.
	ErrMalformedResponse = errors.New("malformed collaborator response")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation history.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type SuggestionCollaborator interface {
	CandidatePrompts(ctx context.Context, class catalog.DocumentClass) ([]string, error)
}

type AnalysisRequest struct {
	Query               string                `json:"query"`
	DocumentClass       catalog.DocumentClass `json:"fileType"`
	ConversationHistory []Message             `json:"messageHistory"`
}

type AnalysisResponse struct {
	Answer               string   `json:"answer"`
	RefreshedSuggestions []string `json:"suggestedQuestions"`
	ContextUsed          string   `json:"context"`
}

type AnalysisCollaborator interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error)
}

// SuggestionFunc adapts a function to SuggestionCollaborator.
type SuggestionFunc func(ctx context.Context, class catalog.DocumentClass) ([]string, error)

func (f SuggestionFunc) CandidatePrompts(ctx context.Context, class catalog.DocumentClass) ([]string, error) {
	return f(ctx, class)
}

// AnalysisFunc adapts a function to AnalysisCollaborator.
type AnalysisFunc func(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error)

func (f AnalysisFunc) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	return f(ctx, req)
}
