package serverutils

import (
	"errors"

	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/review"
	"compliance-review-be/pkg/review/conversation"
	"compliance-review-be/pkg/review/remediation"

	"github.com/gofiber/fiber/v2"
)

// BadRequest is an error rendered as 400 with message.
func BadRequest(message string) error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var fe *fiber.Error
	var ve *ValidationError
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &ve), errors.Is(err, conversation.ErrEmptyQuery):
		return fiber.StatusBadRequest
	case errors.Is(err, review.ErrReviewNotFound),
		errors.Is(err, catalog.ErrUnknownDocumentClass),
		errors.Is(err, remediation.ErrUnknownFinding),
		errors.Is(err, conversation.ErrUnknownSuggestion):
		return fiber.StatusNotFound
	case errors.Is(err, remediation.ErrAnalysisInProgress),
		errors.Is(err, conversation.ErrAnalysisInProgress),
		errors.Is(err, conversation.ErrRequestInProgress),
		errors.Is(err, review.ErrNoDocumentSelected):
		return fiber.StatusConflict
	case errors.Is(err, review.ErrWorkspaceClosed),
		errors.Is(err, remediation.ErrSessionClosed),
		errors.Is(err, conversation.ErrSessionClosed):
		return fiber.StatusGone
	case errors.Is(err, collaborator.ErrCollaboratorUnavailable),
		errors.Is(err, collaborator.ErrMalformedResponse):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware renders any error returned further down the chain
// in the standard response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			message = "Internal server error"
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			return ctx.Status(code).JSON(ErrorResponseWithData(code, "Validation failed", ve.Fields))
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
