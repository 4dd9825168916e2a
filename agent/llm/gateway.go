package llm

import (
	"context"
	"fmt"

	contractx "github.com/wirelimit/visara/agent/contract"
	statex "github.com/wirelimit/visara/agent/state"
	geminix "github.com/wirelimit/visara/pkg/gemini"
)

// GeminiGateway adapts the Gemini client to the agent-layer Gateway
// contract, folding every upstream failure into ErrGeneration.
type GeminiGateway struct {
	client *geminix.Client
}

var _ contractx.Gateway = (*GeminiGateway)(nil)

func NewGateway(ctx context.Context, cfg Config) (*GeminiGateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := geminix.NewClient(cfg.GeminiConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %v", contractx.ErrValidation, err)
	}
	return &GeminiGateway{client: client}, nil
}

func (g *GeminiGateway) GenerateText(ctx context.Context, prompt string, contextText string) (string, error) {
	out, err := g.client.GenerateText(ctx, prompt, contextText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrGeneration, err)
	}
	return out, nil
}

func (g *GeminiGateway) GenerateVision(ctx context.Context, prompt string, image statex.ImageHandle, contextText string) (string, error) {
	out, err := g.client.GenerateVision(ctx, prompt, geminix.Image{
		MIME: image.MIME,
		Data: image.Data,
	}, contextText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrGeneration, err)
	}
	return out, nil
}
