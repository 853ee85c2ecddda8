package placeholder

import (
	"context"
	"time"

	"compliance-review-be/pkg/llm"
)

const Answer = "This is a placeholder response until the real API is integrated"

// Provider answers every request with Answer. It stands in for the legal
// model until a real backend is configured.
type Provider struct{}

var _ llm.CompletionProvider = (*Provider)(nil)

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "placeholder"
}

func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	req = req.WithDefaults()
	return &llm.Completion{
		Text:           Answer,
		ModelVersion:   req.ModelID,
		ProcessingTime: time.Since(start),
	}, nil
}
