package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"compliance-review-be/pkg/catalog"
	"compliance-review-be/pkg/collaborator"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 60 * time.Second

// Client talks to the suggestion and analysis collaborators over HTTP.
type Client struct {
	httpc *resty.Client
}

var (
	_ collaborator.SuggestionCollaborator = (*Client)(nil)
	_ collaborator.AnalysisCollaborator   = (*Client)(nil)
)

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpc := resty.New()
	httpc.SetBaseURL(baseURL)
	httpc.SetTimeout(timeout)
	httpc.SetHeader("Content-Type", "application/json")

	return &Client{httpc: httpc}
}

type suggestionsResult struct {
	SuggestedQuestions []string `json:"suggestedQuestions"`
}

func (c *Client) CandidatePrompts(ctx context.Context, class catalog.DocumentClass) ([]string, error) {
	var r suggestionsResult
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetResult(&r).
		Get("/api/suggested-questions/" + url.PathEscape(string(class)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", collaborator.ErrCollaboratorUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %d on getting suggested questions for '%s'", collaborator.ErrCollaboratorUnavailable, resp.StatusCode(), class)
	}
	if r.SuggestedQuestions == nil {
		return nil, fmt.Errorf("%w: suggestedQuestions missing", collaborator.ErrMalformedResponse)
	}
	return r.SuggestedQuestions, nil
}

func (c *Client) Analyze(ctx context.Context, req collaborator.AnalysisRequest) (*collaborator.AnalysisResponse, error) {
	var r collaborator.AnalysisResponse
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&r).
		Post("/api/analyze-document")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", collaborator.ErrCollaboratorUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %d on analyze-document", collaborator.ErrCollaboratorUnavailable, resp.StatusCode())
	}
	if r.Answer == "" {
		return nil, fmt.Errorf("%w: answer missing", collaborator.ErrMalformedResponse)
	}
	return &r, nil
}
