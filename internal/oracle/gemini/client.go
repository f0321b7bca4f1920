package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hr-screener/internal/logger"
	"hr-screener/internal/utils"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 2
	defaultTimeout    = 60 * time.Second
	defaultMaxLogLen  = 200
)

// backoffBase is the per-attempt backoff unit. Patchable in tests.
var backoffBase = 2 * time.Second

type modelCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements the classification oracle on top of the Gemini API.
type Client struct {
	models     modelCaller
	model      string
	maxRetries int
	timeout    time.Duration
	maxLogLen  int
	logger     *zap.Logger
}

// Options tune the client beyond the required API key.
type Options struct {
	Model      string
	MaxRetries int
	Timeout    time.Duration
	MaxLogLen  int
}

// New creates a Client configured for the Gemini API backend.
func New(ctx context.Context, apiKey string, opts Options, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxLogLen := opts.MaxLogLen
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLen
	}

	return &Client{
		models:     client.Models,
		model:      model,
		maxRetries: maxRetries,
		timeout:    timeout,
		maxLogLen:  maxLogLen,
		logger:     logger.WithCommonFields(log, "gemini", model),
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Classify sends the prompt to Gemini and returns the first textual response.
// Temporary API failures and per-attempt timeouts are retried up to the
// configured attempt budget with a linear backoff; anything else surfaces
// immediately.
func (c *Client) Classify(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		output, err := c.generate(ctx, prompt)
		if err == nil {
			return output, nil
		}

		lastErr = err

		if !temporary(err) || ctx.Err() != nil {
			return "", err
		}

		if attempt == c.maxRetries {
			break
		}

		wait := time.Duration(attempt) * backoffBase
		c.logger.Warn("gemini call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)

		if werr := utils.WaitFor(ctx, wait); werr != nil {
			return "", werr
		}
	}

	return "", fmt.Errorf("gemini call failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", len(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, c.maxLogLen)),
	)

	resp, err := c.models.GenerateContent(attemptCtx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	c.logger.Debug("gemini generate content response",
		zap.Int("response_length", len(output)),
		zap.String("response_preview", logger.TruncateForLog(output, c.maxLogLen)),
	)

	return output, nil
}

// temporary reports whether the error is worth one more attempt: server-side
// failures, rate limiting, and per-attempt timeouts. Client-side API errors
// (bad request, auth) are final.
func temporary(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code >= http.StatusInternalServerError || apiErr.Code == http.StatusTooManyRequests
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	return false
}
