package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/wirelimit/visara/agent/contract"
	geminix "github.com/wirelimit/visara/pkg/gemini"
)

// Config is the agent-level LLM configuration. VisionModel falls back
// to Model when unset, matching the reference system where one model
// served both entry points.
type Config struct {
	BaseURL             string        `envconfig:"BASE_URL" split_words:"true" default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	APIKey              string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model               string        `envconfig:"MODEL" split_words:"true" default:"gemini-1.5-flash"`
	VisionModel         string        `envconfig:"VISION_MODEL" split_words:"true"`
	MaxCompletionTokens int           `envconfig:"MAX_COMPLETION_TOKENS" split_words:"true" default:"2000"`
	Temperature         float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout             time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: gemini api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

func (c Config) GeminiConfig() geminix.Config {
	return geminix.Config{
		BaseURL:             strings.TrimSpace(c.BaseURL),
		APIKey:              strings.TrimSpace(c.APIKey),
		Model:               strings.TrimSpace(c.Model),
		VisionModel:         strings.TrimSpace(c.VisionModel),
		MaxCompletionTokens: c.MaxCompletionTokens,
		Temperature:         c.Temperature,
		Timeout:             c.Timeout,
	}
}
