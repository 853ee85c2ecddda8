package huggingface

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"compliance-review-be/pkg/llm"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://router.huggingface.co/v1"

// HuggingFaceProvider talks to the OpenAI-compatible router.
type HuggingFaceProvider struct {
	model  string
	client *resty.Client
}

var _ llm.CompletionProvider = (*HuggingFaceProvider)(nil)

// Request Payload Structure (OpenAI Compatible)
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewHuggingFaceProvider(apiKey, baseURL, model string) *HuggingFaceProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(120*time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &HuggingFaceProvider{model: model, client: client}
}

func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

func (p *HuggingFaceProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	req = req.WithDefaults()
	start := time.Now()

	var out chatResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       p.model,
			Messages:    req.Messages(),
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		}).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("huggingface api returned error: %s", out.Error.Message)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("huggingface api error (status %d): %s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return nil, llm.ErrEmptyCompletion
	}

	return &llm.Completion{
		Text:           out.Choices[0].Message.Content,
		ModelVersion:   out.Model,
		TokensUsed:     out.Usage.TotalTokens,
		ProcessingTime: time.Since(start),
	}, nil
}
