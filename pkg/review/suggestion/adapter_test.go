package suggestion

import (
	"context"
	"errors"
	"testing"

	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/sampler"

	"github.com/stretchr/testify/assert"
)

func TestFetchInitial(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		err        error
		wantLen    int
	}{
		{name: "truncates to three", candidates: []string{"Q1", "Q2", "Q3", "Q4", "Q5"}, wantLen: 3},
		{name: "keeps short list", candidates: []string{"Q1", "Q2"}, wantLen: 2},
		{name: "drops blanks", candidates: []string{"", "Q1", ""}, wantLen: 1},
		{name: "empty on collaborator failure", err: collaborator.ErrCollaboratorUnavailable, wantLen: 0},
		{name: "empty on malformed payload", err: collaborator.ErrMalformedResponse, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClass catalog.DocumentClass
			source := collaborator.SuggestionFunc(func(ctx context.Context, class catalog.DocumentClass) ([]string, error) {
				gotClass = class
				return tt.candidates, tt.err
			})
			a := NewAdapter(source, sampler.NewSource(5), logger.NewNop())

			got := a.FetchInitial(context.Background(), catalog.ClassPolicy)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, catalog.ClassPolicy, gotClass)
			for _, q := range got {
				assert.Contains(t, tt.candidates, q)
			}
		})
	}
}

func TestFetchInitialCancelled(t *testing.T) {
	source := collaborator.SuggestionFunc(func(ctx context.Context, class catalog.DocumentClass) ([]string, error) {
		<-ctx.Done()
		return nil, errors.Join(collaborator.ErrCollaboratorUnavailable, ctx.Err())
	})
	a := NewAdapter(source, nil, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, a.FetchInitial(ctx, catalog.ClassNDA))
}

func TestFetchInitialWithoutSource(t *testing.T) {
	a := NewAdapter(nil, nil, logger.NewNop())
	assert.Empty(t, a.FetchInitial(context.Background(), catalog.ClassNDA))
}

func TestRefreshDistinctEntries(t *testing.T) {
	a := NewAdapter(nil, sampler.NewSource(1), logger.NewNop())
	in := []string{"Q1", "Q2", "Q3", "Q4"}

	for i := 0; i < 50; i++ {
		got := a.Refresh(in)
		assert.Len(t, got, 3)
		seen := map[string]bool{}
		for _, q := range got {
			assert.False(t, seen[q])
			seen[q] = true
		}
		assert.Subset(t, in, got)
	}
}
