// Package suggestion fetches and rotates the follow-up prompts offered next
// to the conversation.
package suggestion

import (
	"context"

	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/sampler"
)

// MaxSuggestions bounds every suggestion set shown to the reviewer.
const MaxSuggestions = 3

type Adapter struct {
	source collaborator.SuggestionCollaborator
	src    sampler.Source
	logger logger.ILogger
}

func NewAdapter(source collaborator.SuggestionCollaborator, src sampler.Source, log logger.ILogger) *Adapter {
	if src == nil {
		src = sampler.NewTimeSource()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Adapter{source: source, src: src, logger: log}
}

// FetchInitial never fails: suggestions are optional, so any collaborator
// error degrades to an empty set.
func (a *Adapter) FetchInitial(ctx context.Context, class catalog.DocumentClass) []string {
	if a.source == nil {
		return []string{}
	}
	candidates, err := a.source.CandidatePrompts(ctx, class)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Warn("Suggestion", "Failed to fetch suggested questions", map[string]interface{}{
				"document_class": class,
				"error":          err.Error(),
			})
		}
		return []string{}
	}
	return a.Refresh(candidates)
}

// Refresh reduces candidates to at most MaxSuggestions entries, chosen
// uniformly without replacement when there are more.
func (a *Adapter) Refresh(candidates []string) []string {
	filtered := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != "" {
			filtered = append(filtered, c)
		}
	}
	return sampler.Pick(a.src, filtered, MaxSuggestions)
}
