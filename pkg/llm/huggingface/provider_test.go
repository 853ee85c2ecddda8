package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"compliance-review-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen2.5", req.Model)
		assert.Equal(t, llm.DefaultMaxTokens, req.MaxTokens)
		assert.Equal(t, llm.DefaultTemperature, req.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "You review contracts.", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "Is the cap mutual?", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"qwen2.5-instruct","choices":[{"message":{"role":"assistant","content":"It is not."}}],"usage":{"total_tokens":42}}`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider("hf-key", srv.URL, "qwen2.5")
	assert.Equal(t, "huggingface", p.Name())

	got, err := p.Complete(context.Background(), llm.CompletionRequest{
		Context: "You review contracts.",
		Prompt:  "Is the cap mutual?",
	})
	require.NoError(t, err)
	assert.Equal(t, "It is not.", got.Text)
	assert.Equal(t, "qwen2.5-instruct", got.ModelVersion)
	assert.Equal(t, 42, got.TokensUsed)
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
		plain   bool
	}{
		{name: "error body", status: http.StatusOK, body: `{"error":{"message":"model is loading"}}`, wantMsg: "model is loading"},
		{name: "error status", status: http.StatusUnauthorized, body: `{"error":{"message":"invalid token"}}`, wantMsg: "invalid token"},
		{name: "bad gateway", status: http.StatusBadGateway, body: `upstream down`, wantMsg: "status 502", plain: true},
		{name: "empty choices", status: http.StatusOK, body: `{"model":"qwen2.5","choices":[]}`, wantErr: llm.ErrEmptyCompletion},
		{name: "empty content", status: http.StatusOK, body: `{"model":"qwen2.5","choices":[{"message":{"content":""}}]}`, wantErr: llm.ErrEmptyCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.plain {
					w.Header().Set("Content-Type", "text/plain")
				} else {
					w.Header().Set("Content-Type", "application/json")
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHuggingFaceProvider("", srv.URL, "qwen2.5").Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
