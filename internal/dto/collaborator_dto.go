package dto

import "compliance-review-be/pkg/collaborator"

type SuggestedQuestionsResponse struct {
	SuggestedQuestions []string `json:"suggestedQuestions"`
}

type AnalyzeDocumentRequest struct {
	Query          string                 `json:"query" validate:"required"`
	FileType       string                 `json:"fileType" validate:"required"`
	MessageHistory []collaborator.Message `json:"messageHistory"`
}

type AnalyzeDocumentResponse struct {
	Answer             string   `json:"answer"`
	SuggestedQuestions []string `json:"suggestedQuestions"`
	Context            string   `json:"context"`
}

type AnalyzeTextRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

type AnalyzeTextMetadata struct {
	ModelVersion   string `json:"modelVersion"`
	TokensUsed     int    `json:"tokensUsed"`
	ProcessingTime string `json:"processingTime"`
}

type AnalyzeTextResponse struct {
	Response string              `json:"response"`
	Metadata AnalyzeTextMetadata `json:"metadata"`
}
