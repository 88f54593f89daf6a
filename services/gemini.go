package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GeminiClient 封装两个档位的Gemini模型：
// flash用于日记分析和主动问候，pro用于陪伴对话
type GeminiClient struct {
	Flash llms.Model
	Pro   llms.Model
}

func NewGeminiClient(ctx context.Context, apiKey, flashModel, proModel string) (*GeminiClient, error) {
	flash, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(flashModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	pro, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(proModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		Flash: flash,
		Pro:   pro,
	}, nil
}
