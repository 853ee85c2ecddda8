package dto

import (
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/review"
	"compliance-review-be/pkg/review/conversation"
)

type CreateReviewResponse struct {
	Id string `json:"id"`
}

type SelectDocumentRequest struct {
	DocumentClass string `json:"document_class" validate:"required"`
}

type FixFindingResponse struct {
	FindingId       string `json:"finding_id"`
	RemediationText string `json:"remediation_text"`
	AlreadyFixed    bool   `json:"already_fixed"`
}

type FeedbackRequest struct {
	Positive *bool `json:"positive" validate:"required"`
}

type ChatRequest struct {
	Query string `json:"query" validate:"required"`
}

type ChatResponse struct {
	Sent        *collaborator.Message `json:"sent,omitempty"`
	Reply       collaborator.Message  `json:"reply"`
	Outcome     conversation.Outcome  `json:"outcome"`
	Suggestions []string              `json:"suggestions"`
}

type ReviewSnapshotResponse = review.Snapshot
