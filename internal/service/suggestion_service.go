package service

import (
	"context"

	"compliance-review-be/internal/constant"
	"compliance-review-be/internal/dto"
	"compliance-review-be/pkg/catalog"
)

type ISuggestionService interface {
	SuggestedQuestions(ctx context.Context, class string) (*dto.SuggestedQuestionsResponse, error)
}

type suggestionService struct{}

func NewSuggestionService() ISuggestionService {
	return &suggestionService{}
}

func (s *suggestionService) SuggestedQuestions(_ context.Context, class string) (*dto.SuggestedQuestionsResponse, error) {
	dc, err := catalog.ParseDocumentClass(class)
	if err != nil {
		return nil, err
	}
	return &dto.SuggestedQuestionsResponse{
		SuggestedQuestions: append([]string{}, constant.SuggestedQuestions[string(dc)]...),
	}, nil
}
