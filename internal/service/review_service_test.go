package service

import (
	"context"
	"testing"
	"time"

	"compliance-review-be/internal/dto"
	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/internal/repository/memory"
	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/review"
	"compliance-review-be/pkg/review/conversation"
	"compliance-review-be/pkg/review/pacing"
	"compliance-review-be/pkg/review/suggestion"
	"compliance-review-be/pkg/sampler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewService(t *testing.T, analysis collaborator.AnalysisCollaborator) IReviewService {
	t.Helper()
	src := sampler.NewSource(7)
	svc := NewReviewService(
		memory.NewReviewRepository(time.Hour),
		review.Config{Pacer: pacing.Instant()},
		review.Dependencies{
			Sampler:     sampler.New(src),
			Suggestions: suggestion.NewAdapter(nil, src, logger.NewNop()),
			Analysis:    analysis,
		},
		logger.NewNop(),
	)
	t.Cleanup(svc.Shutdown)
	return svc
}

func selectReady(t *testing.T, svc IReviewService, user, id string, class string) *dto.ReviewSnapshotResponse {
	t.Helper()
	_, err := svc.Select(context.Background(), user, id, &dto.SelectDocumentRequest{DocumentClass: class})
	require.NoError(t, err)

	var snap *dto.ReviewSnapshotResponse
	require.Eventually(t, func() bool {
		snap, err = svc.Show(context.Background(), user, id)
		return err == nil && snap.Remediation != nil && !snap.Remediation.Analyzing
	}, 2*time.Second, 5*time.Millisecond)
	return snap
}

func TestReviewServiceOwnership(t *testing.T) {
	svc := newReviewService(t, nil)
	created, err := svc.Create(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Active())
	assert.NoError(t, svc.Authorize(context.Background(), "alice", created.Id))
	assert.ErrorIs(t, svc.Authorize(context.Background(), "bob", created.Id), review.ErrReviewNotFound)
	_, err = svc.Show(context.Background(), "bob", created.Id)
	assert.ErrorIs(t, err, review.ErrReviewNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "bob", created.Id), review.ErrReviewNotFound)

	require.NoError(t, svc.Delete(context.Background(), "alice", created.Id))
	assert.Equal(t, 0, svc.Active())
	_, err = svc.Show(context.Background(), "alice", created.Id)
	assert.ErrorIs(t, err, review.ErrReviewNotFound)
}

func TestReviewServiceSelectUnknownClass(t *testing.T) {
	svc := newReviewService(t, nil)
	created, err := svc.Create(context.Background(), "alice")
	require.NoError(t, err)

	_, err = svc.Select(context.Background(), "alice", created.Id, &dto.SelectDocumentRequest{DocumentClass: "memo"})
	assert.ErrorIs(t, err, catalog.ErrUnknownDocumentClass)
}

func TestReviewServiceFixAndFeedback(t *testing.T) {
	svc := newReviewService(t, nil)
	created, err := svc.Create(context.Background(), "alice")
	require.NoError(t, err)
	snap := selectReady(t, svc, "alice", created.Id, "contract")
	require.NotEmpty(t, snap.Remediation.Findings)
	id := snap.Remediation.Findings[0].Finding.ID

	res, err := svc.Fix(context.Background(), "alice", created.Id, id)
	require.NoError(t, err)
	assert.False(t, res.AlreadyFixed)
	assert.NotEmpty(t, res.RemediationText)

	again, err := svc.Fix(context.Background(), "alice", created.Id, id)
	require.NoError(t, err)
	assert.True(t, again.AlreadyFixed)
	assert.Equal(t, res.RemediationText, again.RemediationText)

	positive := true
	require.NoError(t, svc.Feedback(context.Background(), "alice", created.Id, id, &dto.FeedbackRequest{Positive: &positive}))

	_, err = svc.Fix(context.Background(), "alice", created.Id, "nda-99")
	assert.Error(t, err)
}

func TestReviewServiceChat(t *testing.T) {
	analysis := collaborator.AnalysisFunc(func(ctx context.Context, req collaborator.AnalysisRequest) (*collaborator.AnalysisResponse, error) {
		return &collaborator.AnalysisResponse{Answer: "It lasts two years.", RefreshedSuggestions: []string{"Can it be extended?"}}, nil
	})
	svc := newReviewService(t, analysis)
	created, err := svc.Create(context.Background(), "alice")
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), "alice", created.Id, &dto.ChatRequest{Query: "How long?"})
	assert.ErrorIs(t, err, review.ErrNoDocumentSelected)

	selectReady(t, svc, "alice", created.Id, "nda")

	res, err := svc.Chat(context.Background(), "alice", created.Id, &dto.ChatRequest{Query: "How long?"})
	require.NoError(t, err)
	assert.Equal(t, "How long?", res.Sent.Content)
	assert.Equal(t, "It lasts two years.", res.Reply.Content)
	assert.Equal(t, conversation.OutcomeAnswered, res.Outcome)
	assert.Equal(t, []string{"Can it be extended?"}, res.Suggestions)

	res, err = svc.AskSuggestion(context.Background(), "alice", created.Id, 0)
	require.NoError(t, err)
	assert.Equal(t, "Can it be extended?", res.Sent.Content)

	_, err = svc.AskSuggestion(context.Background(), "alice", created.Id, 3)
	assert.ErrorIs(t, err, conversation.ErrUnknownSuggestion)
}
