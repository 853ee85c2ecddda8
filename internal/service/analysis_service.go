package service

import (
	"context"
	"fmt"
	"strings"

	"compliance-review-be/internal/constant"
	"compliance-review-be/internal/dto"
	"compliance-review-be/internal/pkg/logger"
	"compliance-review-be/internal/pkg/serverutils"
	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/llm"
)

type IAnalysisService interface {
	AnalyzeDocument(ctx context.Context, req *dto.AnalyzeDocumentRequest) (*dto.AnalyzeDocumentResponse, error)
	AnalyzeText(ctx context.Context, req *dto.AnalyzeTextRequest) (*dto.AnalyzeTextResponse, error)
}

type analysisService struct {
	provider llm.CompletionProvider
	logger   logger.ILogger
}

func NewAnalysisService(provider llm.CompletionProvider, log logger.ILogger) IAnalysisService {
	return &analysisService{provider: provider, logger: log}
}

// AnalyzeDocument answers a reviewer question about a document class and
// proposes follow-up questions from the class bank.
func (s *analysisService) AnalyzeDocument(ctx context.Context, req *dto.AnalyzeDocumentRequest) (*dto.AnalyzeDocumentResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, serverutils.BadRequest("Missing query")
	}
	class, err := catalog.ParseDocumentClass(req.FileType)
	if err != nil {
		return nil, err
	}

	systemContext := constant.ReviewSystemContext[string(class)]
	history := make([]llm.Message, 0, len(req.MessageHistory))
	for _, m := range req.MessageHistory {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := "user"
		if m.Role == collaborator.RoleAssistant {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}

	completion, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Context: systemContext,
		History: history,
		Prompt:  req.Query,
	})
	if err != nil {
		s.logger.Error("Analysis", "Completion failed", map[string]interface{}{
			"provider":       s.provider.Name(),
			"document_class": class,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", collaborator.ErrCollaboratorUnavailable, err)
	}

	return &dto.AnalyzeDocumentResponse{
		Answer:             completion.Text,
		SuggestedQuestions: followUps(class, req.Query),
		Context:            systemContext,
	}, nil
}

// followUps is the class bank minus the question just asked.
func followUps(class catalog.DocumentClass, asked string) []string {
	asked = strings.TrimSpace(asked)
	bank := constant.SuggestedQuestions[string(class)]
	out := make([]string, 0, len(bank))
	for _, q := range bank {
		if strings.EqualFold(q, asked) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// AnalyzeText runs a raw completion of prompt against context.
func (s *analysisService) AnalyzeText(ctx context.Context, req *dto.AnalyzeTextRequest) (*dto.AnalyzeTextResponse, error) {
	if req.Prompt == "" || req.Context == "" {
		return nil, serverutils.BadRequest("Missing prompt or context")
	}

	completion, err := s.provider.Complete(ctx, llm.CompletionRequest{
		ModelID:     llm.DefaultModelID,
		ProjectID:   llm.DefaultProjectID,
		Context:     req.Context,
		Prompt:      req.Prompt,
		Temperature: llm.DefaultTemperature,
		MaxTokens:   llm.DefaultMaxTokens,
	})
	if err != nil {
		s.logger.Error("Analysis", "Error processing request", map[string]interface{}{
			"provider": s.provider.Name(),
			"error":    err.Error(),
		})
		return nil, err
	}

	return &dto.AnalyzeTextResponse{
		Response: completion.Text,
		Metadata: dto.AnalyzeTextMetadata{
			ModelVersion:   completion.ModelVersion,
			TokensUsed:     completion.TokensUsed,
			ProcessingTime: completion.FormatProcessingTime(),
		},
	}, nil
}
