package review

import (
	"context"
	"sync"
	"testing"
	"time"

	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/events"
	"compliance-review-be/pkg/review/pacing"
	"compliance-review-be/pkg/review/remediation"
	"compliance-review-be/pkg/review/suggestion"
	"compliance-review-be/pkg/sampler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Notify(_ context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

func instantConfig() Config {
	return Config{Pacer: pacing.Instant()}
}

func newWorkspace(t *testing.T, cfg Config, deps Dependencies) *Workspace {
	t.Helper()
	if deps.Sampler == nil {
		deps.Sampler = sampler.New(sampler.NewSource(11))
	}
	deps.Logger = logger.NewNop()
	w := NewWorkspace("rev-1", cfg, deps)
	t.Cleanup(w.Close)
	return w
}

func waitReady(t *testing.T, w *Workspace) {
	t.Helper()
	rem, err := w.Remediation()
	require.NoError(t, err)
	select {
	case <-rem.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("findings never revealed")
	}
}

func TestWorkspaceNothingSelected(t *testing.T) {
	w := newWorkspace(t, instantConfig(), Dependencies{})

	_, err := w.ApplyFix(context.Background(), "nda-1")
	assert.ErrorIs(t, err, ErrNoDocumentSelected)
	_, err = w.Ask(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoDocumentSelected)
	assert.ErrorIs(t, w.RecordFeedback("nda-1", true), ErrNoDocumentSelected)

	snap := w.Snapshot()
	assert.Equal(t, "rev-1", snap.ID)
	assert.Nil(t, snap.Remediation)
	assert.Nil(t, snap.Conversation)
}

func TestWorkspaceSelectUnknownClass(t *testing.T) {
	w := newWorkspace(t, instantConfig(), Dependencies{})
	err := w.Select(catalog.DocumentClass("memo"))
	assert.ErrorIs(t, err, catalog.ErrUnknownDocumentClass)
	assert.Zero(t, w.Epoch())
}

func TestWorkspaceSelectAndFix(t *testing.T) {
	rec := &recorder{}
	w := newWorkspace(t, instantConfig(), Dependencies{Notifier: rec})

	require.NoError(t, w.Select(catalog.ClassContract))
	waitReady(t, w)

	rem, err := w.Remediation()
	require.NoError(t, err)
	findings := rem.Findings()
	require.Len(t, findings, sampler.SampleSize)

	res, err := w.ApplyFix(context.Background(), findings[0].ID)
	require.NoError(t, err)
	assert.Equal(t, findings[0].ID, res.FindingID)
	require.NoError(t, w.RecordFeedback(findings[0].ID, true))

	assert.Equal(t, []string{
		events.TypeDocumentSelected,
		events.TypeFindingsReady,
		events.TypeFindingFixed,
		events.TypeFeedbackRecorded,
	}, filterAudit(rec.types()))

	snap := w.Snapshot()
	assert.Equal(t, catalog.ClassContract, snap.Class)
	assert.Equal(t, uint64(1), snap.Epoch)
	require.NotNil(t, snap.Remediation)
	require.NotNil(t, snap.Conversation)
}

func filterAudit(types []string) []string {
	out := []string{}
	for _, t := range types {
		switch t {
		case events.TypeSuggestionsReplaced, events.TypeConversationState, events.TypeMessageAppended:
			continue
		}
		out = append(out, t)
	}
	return out
}

func TestWorkspaceEventsCarryReviewAndEpoch(t *testing.T) {
	rec := &recorder{}
	w := newWorkspace(t, instantConfig(), Dependencies{Notifier: rec})
	require.NoError(t, w.Select(catalog.ClassNDA))

	rec.mu.Lock()
	first := rec.events[0]
	rec.mu.Unlock()
	assert.Equal(t, events.TypeDocumentSelected, first.EventType())
	assert.Equal(t, "rev-1", first.Payload()["review_id"])
	assert.Equal(t, uint64(1), first.Payload()["epoch"])
	assert.Equal(t, catalog.ClassNDA, first.Payload()["document_class"])
}

func TestWorkspaceSeedsSuggestions(t *testing.T) {
	source := collaborator.SuggestionFunc(func(ctx context.Context, class catalog.DocumentClass) ([]string, error) {
		return []string{"a", "b", "c", "d"}, nil
	})
	deps := Dependencies{Suggestions: suggestion.NewAdapter(source, sampler.NewSource(5), logger.NewNop())}
	w := newWorkspace(t, instantConfig(), deps)
	require.NoError(t, w.Select(catalog.ClassPolicy))

	conv, err := w.Conversation()
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return len(conv.Suggestions()) == 3 }, time.Second, 5*time.Millisecond)
}

func TestWorkspaceStaleSuggestionFetchDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls sync.WaitGroup
	calls.Add(1)
	first := true
	var mu sync.Mutex

	source := collaborator.SuggestionFunc(func(ctx context.Context, class catalog.DocumentClass) ([]string, error) {
		mu.Lock()
		isFirst := first
		first = false
		mu.Unlock()
		if isFirst {
			calls.Done()
			<-release
			return []string{"stale nda question"}, nil
		}
		return []string{}, nil
	})
	deps := Dependencies{Suggestions: suggestion.NewAdapter(source, sampler.NewSource(5), logger.NewNop())}
	w := newWorkspace(t, instantConfig(), deps)

	require.NoError(t, w.Select(catalog.ClassNDA))
	calls.Wait()
	require.NoError(t, w.Select(catalog.ClassContract))
	close(release)

	conv, err := w.Conversation()
	require.NoError(t, err)
	assert.Never(t, func() bool { return len(conv.Suggestions()) > 0 }, 100*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, catalog.ClassContract, conv.Class())
	assert.Equal(t, uint64(2), w.Epoch())
}

func TestWorkspaceReselectDiscardsPendingAnswer(t *testing.T) {
	started := make(chan struct{})
	analysis := collaborator.AnalysisFunc(func(ctx context.Context, req collaborator.AnalysisRequest) (*collaborator.AnalysisResponse, error) {
		close(started)
		<-ctx.Done()
		return &collaborator.AnalysisResponse{Answer: "late", RefreshedSuggestions: []string{"late"}}, nil
	})
	rec := &recorder{}
	w := newWorkspace(t, instantConfig(), Dependencies{Analysis: analysis, Notifier: rec})

	require.NoError(t, w.Select(catalog.ClassNDA))
	waitReady(t, w)
	oldConv, err := w.Conversation()
	require.NoError(t, err)

	results, err := oldConv.Submit("Is this enforceable?")
	require.NoError(t, err)
	<-started

	require.NoError(t, w.Select(catalog.ClassPolicy))
	<-results

	newConv, err := w.Conversation()
	require.NoError(t, err)
	assert.NotSame(t, oldConv, newConv)
	assert.Empty(t, newConv.History())
	assert.Empty(t, newConv.Suggestions())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, e := range rec.events {
		if e.EventType() != events.TypeMessageAppended {
			continue
		}
		msg, ok := e.Payload()["message"].(collaborator.Message)
		require.True(t, ok)
		assert.NotEqual(t, collaborator.RoleAssistant, msg.Role)
	}
}

func TestWorkspaceReselectCancelsPendingFix(t *testing.T) {
	cfg := Config{FixDelay: time.Hour, Pacer: pacing.Instant()}
	w := newWorkspace(t, cfg, Dependencies{})
	require.NoError(t, w.Select(catalog.ClassNDA))
	waitReady(t, w)

	rem, err := w.Remediation()
	require.NoError(t, err)
	id := rem.Findings()[0].ID

	errc := make(chan error, 1)
	go func() {
		_, err := rem.ApplyFix(context.Background(), id)
		errc <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, w.Select(catalog.ClassNDA))

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, remediation.ErrSessionClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("pending fix not released by reselect")
	}
}

func TestWorkspaceClose(t *testing.T) {
	block := make(chan struct{})
	source := collaborator.SuggestionFunc(func(ctx context.Context, class catalog.DocumentClass) ([]string, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-block:
			return nil, nil
		}
	})
	deps := Dependencies{Suggestions: suggestion.NewAdapter(source, nil, logger.NewNop())}
	w := newWorkspace(t, Config{AnalysisDelay: time.Hour, Pacer: pacing.Instant()}, deps)
	require.NoError(t, w.Select(catalog.ClassNDA))
	assert.False(t, w.Closed())

	w.Close()
	assert.True(t, w.Closed())
	w.Close()

	assert.ErrorIs(t, w.Select(catalog.ClassNDA), ErrWorkspaceClosed)
	_, err := w.Remediation()
	assert.ErrorIs(t, err, ErrWorkspaceClosed)
}
