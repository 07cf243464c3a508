package imaginator

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"fairshare/internal/errors"
)

// Generation sampling parameters for story output.
const (
	temperature = 0.8
	topP        = 0.95
)

// Generator accepts a single opaque prompt and returns prose text. Any
// failure surfaces as a generic GENERATION_FAILED condition.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientConfig configures the OpenAI-compatible generation client.
type ClientConfig struct {
	APIKey  string
	BaseURL string // empty means the upstream default
	Model   string
	Timeout time.Duration
}

// Client is a Generator backed by an OpenAI-compatible chat endpoint.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient creates a generation client.
func NewClient(cfg ClientConfig, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, stderrors.New("generator API key is not set")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:  openai.NewClientWithConfig(oc),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log,
	}, nil
}

// Generate implements Generator. The call runs to completion or failure
// within the configured timeout; it is not otherwise abortable.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		c.log.Error().Err(err).Str("model", c.model).Msg("story generation request failed")
		return "", errors.NewGenerationFailed()
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.log.Error().Str("model", c.model).Msg("story generation returned no content")
		return "", errors.NewGenerationFailed()
	}
	return resp.Choices[0].Message.Content, nil
}
