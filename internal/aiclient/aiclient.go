package aiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"invitely/api-gateway/models"
)

var (
	// ErrMissingAPIKey is returned when no model credential is configured.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not configured")
	// ErrNoAnswers is returned when no usable question/answer pair was given.
	ErrNoAnswers = errors.New("answers must contain at least one question/answer pair")
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	temperature    = 0.4
	maxErrorBody   = 512
)

// Config configures the model API client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// HTTPClient defaults to a client without timeout; the request context
	// bounds the call.
	HTTPClient *http.Client
}

// AIClient talks to an OpenAI-compatible chat completions API to prefill
// invite fields.
type AIClient struct {
	client *openai.Client
	apiKey string
	model  string
	http   *http.Client
	logger *logrus.Logger
}

// NewAIClient creates and returns a new AIClient. A client without an API key
// is valid; Prefill reports ErrMissingAPIKey.
func NewAIClient(cfg Config, logger *logrus.Logger) *AIClient {
	c := &AIClient{
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  cfg.Model,
		http:   cfg.HTTPClient,
		logger: logger,
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}

	clientCfg := openai.DefaultConfig(c.apiKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = defaultBaseURL
	}
	clientCfg.HTTPClient = c.http
	c.client = openai.NewClientWithConfig(clientCfg)
	return c
}

// Enabled reports whether a credential is configured.
func (c *AIClient) Enabled() bool {
	return c.apiKey != ""
}

// Close releases idle connections.
func (c *AIClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Prefill asks the model to derive invite field values from answers. The
// result always has exactly the schema keys; see NormalizeFields.
func (c *AIClient) Prefill(ctx context.Context, answers []models.Answer) (map[string]string, error) {
	if !c.Enabled() {
		return nil, ErrMissingAPIKey
	}
	pairs := usableAnswers(answers)
	if len(pairs) == 0 {
		return nil, ErrNoAnswers
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(pairs)},
		},
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	c.logger.WithFields(logrus.Fields{
		"model":   c.model,
		"answers": len(pairs),
	}).Info("AIClient: sending prefill request")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Errorf("AIClient: prefill request failed: %v", err)
		return nil, upstreamError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model response has no choices")
	}

	data, err := NormalizeFields([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		return nil, err
	}
	c.logger.Info("AIClient: received prefill response")
	return data, nil
}

// upstreamError reports the status and message of a failed model API call.
func upstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("model API returned status %d: %s", apiErr.HTTPStatusCode, excerpt(apiErr.Message))
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("model API returned status %d: %s", reqErr.HTTPStatusCode, excerpt(reqErr.Error()))
	}
	return fmt.Errorf("calling model API: %w", err)
}

func usableAnswers(answers []models.Answer) []models.Answer {
	out := make([]models.Answer, 0, len(answers))
	for _, a := range answers {
		q, ans := strings.TrimSpace(a.Q), strings.TrimSpace(a.A)
		if q == "" && ans == "" {
			continue
		}
		out = append(out, models.Answer{Q: q, A: ans})
	}
	return out
}

// excerpt trims s to at most maxErrorBody bytes without splitting a rune.
func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrorBody {
		return s
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
