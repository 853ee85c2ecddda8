package ollama

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"compliance-review-be/pkg/llm"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "http://localhost:11434"

type OllamaProvider struct {
	ModelName string
	client    *resty.Client
}

// Ensure OllamaProvider implements CompletionProvider
var _ llm.CompletionProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OllamaProvider{
		ModelName: modelName,
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(120*time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []llm.Message  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model           string      `json:"model"`
	Message         llm.Message `json:"message"`
	Done            bool        `json:"done"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
	TotalDuration   int64       `json:"total_duration"`
}

func (o *OllamaProvider) Name() string {
	return "ollama"
}

func (o *OllamaProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	req = req.WithDefaults()
	start := time.Now()

	payload := ollamaChatRequest{
		Model:    o.ModelName,
		Messages: req.Messages(),
		Stream:   false,
		Options: &ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}

	var out ollamaChatResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/api/chat")
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if out.Message.Content == "" {
		return nil, llm.ErrEmptyCompletion
	}

	elapsed := time.Since(start)
	if out.TotalDuration > 0 {
		elapsed = time.Duration(out.TotalDuration)
	}
	return &llm.Completion{
		Text:           out.Message.Content,
		ModelVersion:   out.Model,
		TokensUsed:     out.PromptEvalCount + out.EvalCount,
		ProcessingTime: elapsed,
	}, nil
}
