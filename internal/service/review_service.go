package service

import (
	"context"
	"errors"

	"compliance-review-be/internal/dto"
	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/internal/repository/memory"
	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/review"
	"compliance-review-be/pkg/review/conversation"
	"compliance-review-be/pkg/review/remediation"

	"github.com/google/uuid"
)

type IReviewService interface {
	Create(ctx context.Context, userId string) (*dto.CreateReviewResponse, error)
	Show(ctx context.Context, userId, reviewId string) (*dto.ReviewSnapshotResponse, error)
	Delete(ctx context.Context, userId, reviewId string) error
	Select(ctx context.Context, userId, reviewId string, req *dto.SelectDocumentRequest) (*dto.ReviewSnapshotResponse, error)
	Fix(ctx context.Context, userId, reviewId, findingId string) (*dto.FixFindingResponse, error)
	Feedback(ctx context.Context, userId, reviewId, findingId string, req *dto.FeedbackRequest) error
	Chat(ctx context.Context, userId, reviewId string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	AskSuggestion(ctx context.Context, userId, reviewId string, index int) (*dto.ChatResponse, error)
	Authorize(ctx context.Context, userId, reviewId string) error
	Active() int
	Shutdown()
}

type reviewService struct {
	repo   *memory.ReviewRepository
	config review.Config
	deps   review.Dependencies
	logger logger.ILogger
}

func NewReviewService(repo *memory.ReviewRepository, config review.Config, deps review.Dependencies, log logger.ILogger) IReviewService {
	deps.Logger = log
	return &reviewService{repo: repo, config: config, deps: deps, logger: log}
}

func (s *reviewService) Create(_ context.Context, userId string) (*dto.CreateReviewResponse, error) {
	id := uuid.NewString()
	s.repo.Save(&memory.ReviewEntry{
		OwnerID:   userId,
		Workspace: review.NewWorkspace(id, s.config, s.deps),
	})
	s.logger.Info("Review", "Workspace created", map[string]interface{}{"review_id": id, "user_id": userId})
	return &dto.CreateReviewResponse{Id: id}, nil
}

// workspace resolves reviewId for its owner. Other users' reviews are
// reported as missing.
func (s *reviewService) workspace(userId, reviewId string) (*review.Workspace, error) {
	entry, ok := s.repo.Get(reviewId)
	if !ok || entry.OwnerID != userId {
		return nil, review.ErrReviewNotFound
	}
	return entry.Workspace, nil
}

func (s *reviewService) Authorize(_ context.Context, userId, reviewId string) error {
	_, err := s.workspace(userId, reviewId)
	return err
}

func (s *reviewService) Show(_ context.Context, userId, reviewId string) (*dto.ReviewSnapshotResponse, error) {
	ws, err := s.workspace(userId, reviewId)
	if err != nil {
		return nil, err
	}
	snap := ws.Snapshot()
	return &snap, nil
}

func (s *reviewService) Delete(_ context.Context, userId, reviewId string) error {
	if _, err := s.workspace(userId, reviewId); err != nil {
		return err
	}
	s.repo.Delete(reviewId)
	return nil
}

func (s *reviewService) Select(_ context.Context, userId, reviewId string, req *dto.SelectDocumentRequest) (*dto.ReviewSnapshotResponse, error) {
	ws, err := s.workspace(userId, reviewId)
	if err != nil {
		return nil, err
	}
	class, err := catalog.ParseDocumentClass(req.DocumentClass)
	if err != nil {
		return nil, err
	}
	if err := ws.Select(class); err != nil {
		return nil, err
	}
	snap := ws.Snapshot()
	return &snap, nil
}

func (s *reviewService) Fix(ctx context.Context, userId, reviewId, findingId string) (*dto.FixFindingResponse, error) {
	ws, err := s.workspace(userId, reviewId)
	if err != nil {
		return nil, err
	}
	res, err := ws.ApplyFix(ctx, findingId)
	if err != nil && !errors.Is(err, remediation.ErrAlreadyFixed) {
		return nil, err
	}
	return &dto.FixFindingResponse{
		FindingId:       res.FindingID,
		RemediationText: res.RemediationText,
		AlreadyFixed:    res.AlreadyFixed,
	}, nil
}

func (s *reviewService) Feedback(_ context.Context, userId, reviewId, findingId string, req *dto.FeedbackRequest) error {
	ws, err := s.workspace(userId, reviewId)
	if err != nil {
		return err
	}
	return ws.RecordFeedback(findingId, *req.Positive)
}

func (s *reviewService) Chat(ctx context.Context, userId, reviewId string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	conv, err := s.conversation(userId, reviewId)
	if err != nil {
		return nil, err
	}
	res, err := conv.Exchange(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	return chatResponse(res), nil
}

func (s *reviewService) AskSuggestion(ctx context.Context, userId, reviewId string, index int) (*dto.ChatResponse, error) {
	conv, err := s.conversation(userId, reviewId)
	if err != nil {
		return nil, err
	}
	text, err := conv.SuggestionAt(index)
	if err != nil {
		return nil, err
	}
	res, err := conv.Exchange(ctx, text)
	if err != nil {
		return nil, err
	}
	return chatResponse(res), nil
}

func (s *reviewService) conversation(userId, reviewId string) (*conversation.Session, error) {
	ws, err := s.workspace(userId, reviewId)
	if err != nil {
		return nil, err
	}
	return ws.Conversation()
}

func chatResponse(res conversation.Result) *dto.ChatResponse {
	sent := res.Sent
	return &dto.ChatResponse{
		Sent:        &sent,
		Reply:       res.Message,
		Outcome:     res.Outcome,
		Suggestions: res.Suggestions,
	}
}

// Active is the number of live workspaces on this instance.
func (s *reviewService) Active() int {
	return s.repo.Count()
}

func (s *reviewService) Shutdown() {
	s.repo.CloseAll()
}
