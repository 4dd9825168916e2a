// Package gemini is a thin client for Gemini's OpenAI-compatible
// endpoint, exposing the two generation entry points the agent layer
// depends on: plain text completion and image-conditioned completion.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrGenerate marks any upstream completion failure. Callers treat
// every generation failure uniformly; no transient/permanent split.
var ErrGenerate = errors.New("generation failed")

type Config struct {
	BaseURL             string        `envconfig:"BASE_URL" split_words:"true" default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	APIKey              string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model               string        `envconfig:"MODEL" split_words:"true" default:"gemini-1.5-flash"`
	VisionModel         string        `envconfig:"VISION_MODEL" split_words:"true"`
	MaxCompletionTokens int           `envconfig:"MAX_COMPLETION_TOKENS" split_words:"true" default:"2000"`
	Temperature         float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout             time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// Image is an already-decoded image payload. Decoding and
// normalization happen upstream; the client only encodes to a data URL.
type Image struct {
	MIME string
	Data []byte
}

type Client struct {
	api         openaisdk.Client
	model       string
	visionModel string
	maxTokens   int64
	temperature float64
}

func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("gemini model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	visionModel := strings.TrimSpace(cfg.VisionModel)
	if visionModel == "" {
		visionModel = model
	}

	maxTokens := cfg.MaxCompletionTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	return &Client{
		api:         openaisdk.NewClient(opts...),
		model:       model,
		visionModel: visionModel,
		maxTokens:   int64(maxTokens),
		temperature: cfg.Temperature,
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// GenerateText runs a text-only completion. A non-empty contextText is
// prepended so recent conversation informs the answer.
func (c *Client) GenerateText(ctx context.Context, prompt string, contextText string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(c.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(fullPrompt(prompt, contextText)),
		},
		MaxCompletionTokens: openaisdk.Int(c.maxTokens),
		Temperature:         openaisdk.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: text completion: %v", ErrGenerate, err)
	}
	return firstChoice(resp)
}

// GenerateVision runs a completion conditioned on one image, passed as
// a base64 data-URL content part.
func (c *Client) GenerateVision(ctx context.Context, prompt string, img Image, contextText string) (string, error) {
	if len(img.Data) == 0 {
		return "", fmt.Errorf("%w: image payload is empty", ErrGenerate)
	}

	parts := []openaisdk.ChatCompletionContentPartUnionParam{
		openaisdk.TextContentPart(fullPrompt(prompt, contextText)),
		openaisdk.ImageContentPart(openaisdk.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL(img),
		}),
	}

	resp, err := c.api.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(c.visionModel),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(parts),
		},
		MaxCompletionTokens: openaisdk.Int(c.maxTokens),
		Temperature:         openaisdk.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: vision completion: %v", ErrGenerate, err)
	}
	return firstChoice(resp)
}

func fullPrompt(prompt string, contextText string) string {
	if strings.TrimSpace(contextText) == "" {
		return prompt
	}
	return fmt.Sprintf("Context: %s\n\nQuery: %s", contextText, prompt)
}

func dataURL(img Image) string {
	mime := strings.TrimSpace(img.MIME)
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func firstChoice(resp *openaisdk.ChatCompletion) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion response", ErrGenerate)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: completion content is empty", ErrGenerate)
	}
	return content, nil
}
