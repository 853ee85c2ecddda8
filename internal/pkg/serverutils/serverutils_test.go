package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"
	"compliance-review-be/pkg/review"
	"compliance-review-be/pkg/review/conversation"
	"compliance-review-be/pkg/review/remediation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("select: %w", catalog.ErrUnknownDocumentClass), want: fiber.StatusNotFound},
		{err: remediation.ErrUnknownFinding, want: fiber.StatusNotFound},
		{err: review.ErrReviewNotFound, want: fiber.StatusNotFound},
		{err: BadRequest("Missing prompt or context"), want: fiber.StatusBadRequest},
		{err: remediation.ErrAnalysisInProgress, want: fiber.StatusConflict},
		{err: conversation.ErrRequestInProgress, want: fiber.StatusConflict},
		{err: review.ErrNoDocumentSelected, want: fiber.StatusConflict},
		{err: conversation.ErrEmptyQuery, want: fiber.StatusBadRequest},
		{err: &ValidationError{Fields: map[string]string{"query": "required"}}, want: fiber.StatusBadRequest},
		{err: conversation.ErrSessionClosed, want: fiber.StatusGone},
		{err: collaborator.ErrCollaboratorUnavailable, want: fiber.StatusBadGateway},
		{err: fiber.ErrMethodNotAllowed, want: fiber.StatusMethodNotAllowed},
		{err: errors.New("boom"), want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/missing", func(ctx *fiber.Ctx) error { return review.ErrReviewNotFound })
	app.Get("/failing", func(ctx *fiber.Ctx) error { return errors.New("db exploded") })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, fiber.StatusNotFound, body.Code)
	assert.Equal(t, review.ErrReviewNotFound.Error(), body.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/failing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Message)
}

func TestValidateRequest(t *testing.T) {
	type request struct {
		Query string `json:"query" validate:"required"`
	}

	assert.NoError(t, ValidateRequest(request{Query: "ok"}))

	err := ValidateRequest(request{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve.Fields["query"])
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "test-secret"
	app := fiber.New()
	app.Use(NewJwtMiddleware(secret))
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})

	sign := func(key string, claims jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return tok
	}
	valid := sign(secret, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: fiber.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + sign("other", jwt.MapClaims{"user_id": "u-1"}), want: fiber.StatusUnauthorized},
		{name: "expired", header: "Bearer " + sign(secret, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()}), want: fiber.StatusUnauthorized},
		{name: "valid", header: "Bearer " + valid, want: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
