package ollama

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
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		require.NotNil(t, req.Options)
		assert.Equal(t, llm.DefaultTemperature, req.Options.Temperature)
		assert.Equal(t, llm.DefaultMaxTokens, req.Options.NumPredict)
		require.Len(t, req.Messages, 3)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[2].Role)
		assert.Equal(t, "Is clause 4 valid?", req.Messages[2].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"Yes."},"done":true,"prompt_eval_count":12,"eval_count":3,"total_duration":1500000000}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	got, err := p.Complete(context.Background(), llm.CompletionRequest{
		Context: "You review NDAs.",
		History: []llm.Message{{Role: "assistant", Content: "Hello"}},
		Prompt:  "Is clause 4 valid?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Yes.", got.Text)
	assert.Equal(t, "llama3", got.ModelVersion)
	assert.Equal(t, 15, got.TokensUsed)
	assert.Equal(t, "1.5s", got.FormatProcessingTime())
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "empty content", status: http.StatusOK, body: `{"model":"llama3","message":{"role":"assistant","content":""}}`, wantErr: llm.ErrEmptyCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOllamaProvider(srv.URL, "llama3").Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
