// Package gateway holds the client for the hosted chat-completion service
// that turns an app idea into a PRD document. The gateway is treated as a
// black box: one synchronous, cancellable request per generation, no
// internal retries, failures classified into a typed taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vibespecs/vibespecs/internal/prd"
)

const defaultBaseURL = "https://ai.gateway.lovable.dev/v1"

// Options configures the gateway client.
type Options struct {
	APIKey           string
	BaseURL          string
	Model            string
	RequestTimeoutMs int
}

// Client calls the generation gateway's OpenAI-compatible chat completions
// endpoint.
type Client struct {
	options Options
	client  *http.Client
	baseURL string
}

// chatRequest is the OpenAI-compatible request body.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the completion response we consume.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// NewClient creates a gateway client. A missing credential is a
// configuration error, reported here rather than on first use.
func NewClient(options Options) (*Client, error) {
	if options.APIKey == "" {
		return nil, &GenerationError{
			Kind:    KindNotConfigured,
			Message: "gateway API key is not configured",
		}
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := 60 * time.Second
	if options.RequestTimeoutMs > 0 {
		timeout = time.Duration(options.RequestTimeoutMs) * time.Millisecond
	}

	return &Client{
		options: options,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}, nil
}

// Generate asks the gateway for a PRD for the given idea. This is the
// single suspension point of the system: a long-latency network call that
// honors ctx cancellation. Exactly one attempt is made.
func (c *Client) Generate(ctx context.Context, idea string, advanced bool) (*prd.Document, error) {
	if strings.TrimSpace(idea) == "" {
		return nil, &GenerationError{
			Kind:    KindInvalidInput,
			Message: "please provide an app idea",
		}
	}

	request := chatRequest{
		Model: c.options.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(idea, advanced)},
		},
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, &GenerationError{Kind: KindUpstream, Message: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(requestBody))
	if err != nil {
		return nil, &GenerationError{Kind: KindUpstream, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.options.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &GenerationError{Kind: KindUpstream, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, classifyStatus(resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, &GenerationError{Kind: KindMalformedResponse, Message: "failed to decode gateway response", Err: err}
	}

	content := ""
	if len(response.Choices) > 0 {
		content = response.Choices[0].Message.Content
	}
	if content == "" {
		return nil, &GenerationError{Kind: KindMalformedResponse, Message: "no content in gateway response"}
	}

	doc, err := prd.Decode([]byte(prd.StripCodeFences(content)))
	if err != nil {
		return nil, &GenerationError{Kind: KindMalformedResponse, Message: "gateway content is not a valid PRD", Err: err}
	}
	return doc, nil
}

// classifyStatus maps gateway HTTP failures onto the error taxonomy.
func classifyStatus(status int, body string) *GenerationError {
	switch status {
	case http.StatusTooManyRequests:
		return &GenerationError{
			Kind:       KindRateLimited,
			StatusCode: status,
			Message:    "rate limit exceeded, please try again in a moment",
		}
	case http.StatusPaymentRequired:
		return &GenerationError{
			Kind:       KindQuotaExceeded,
			StatusCode: status,
			Message:    "usage limit reached, please add credits to continue",
		}
	default:
		return &GenerationError{
			Kind:       KindUpstream,
			StatusCode: status,
			Message:    fmt.Sprintf("gateway error: %s", strings.TrimSpace(body)),
		}
	}
}
