package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cinda/backend/internal/domain"
	"golang.org/x/time/rate"
)

const defaultRequestsPerMinute = 500

// Client handles communication with the OpenAI chat completions API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new OpenAI API client. requestsPerMinute bounds the
// outbound call rate; zero or negative selects the default.
func NewClient(apiKey, baseURL, model string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = defaultRequestsPerMinute
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// chat completions wire format
type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message wireMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// CreateChatCompletion sends the conversation to the model and returns the
// assistant reply text
func (c *Client) CreateChatCompletion(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", domain.ErrInvalidRequest
	}

	wire := make([]wireMessage, len(messages))
	for i, m := range messages {
		wire[i] = wireMessage{Role: m.Role, Content: m.Content}
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model:    c.model,
		Messages: wire,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/chat/completions", c.baseURL)

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL, payload)
		if err != nil {
			if c.debug {
				log.Printf("[OPENAI] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		// Auth failures will not resolve by retrying
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: status %d", domain.ErrOpenAIFailure, resp.StatusCode)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if c.debug {
				log.Printf("[OPENAI] rate limited (attempt %d)", attempt)
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrRateLimited, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[OPENAI] API error (attempt %d) - status: %d, body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrOpenAIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var completion chatCompletionResponse
		if err := json.Unmarshal(body, &completion); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}

		if completion.Error != nil {
			return "", fmt.Errorf("%w: %s", domain.ErrOpenAIFailure, completion.Error.Message)
		}
		if len(completion.Choices) == 0 {
			return "", fmt.Errorf("%w: response contained no choices", domain.ErrOpenAIFailure)
		}

		if c.debug {
			log.Printf("[OPENAI] completion returned %d choices", len(completion.Choices))
		}

		return completion.Choices[0].Message.Content, nil
	}

	return "", lastErr
}

// doRequest executes an HTTP POST request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "Cinda/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOpenAIFailure, err)
	}

	return resp, nil
}

// exponentialBackoff returns the wait before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}
