package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-flash-latest"

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Model() string
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiService struct {
	models    contentGenerator
	modelName string
	logger    *zap.Logger
}

// NewGeminiService creates the process-wide Gemini client.
func NewGeminiService(ctx context.Context, apiKey, model string, logger *zap.Logger) (GeminiService, error) {
	client, err := NewGenAIClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	return newGeminiService(client.Models, model, logger), nil
}

// NewGenAIClient builds a genai client for the Gemini API backend.
func NewGenAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return client, nil
}

func newGeminiService(models contentGenerator, model string, logger *zap.Logger) *geminiService {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}

	return &geminiService{
		models:    models,
		modelName: model,
		logger:    logger,
	}
}

// GenerateText sends a single prompt and returns the response text. No retry.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		g.logger.Error("❌ Gemini API error", zap.String("model", g.modelName), zap.Error(err))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		g.logger.Warn("❌ No text content in Gemini response",
			zap.String("model", g.modelName),
			zap.Int("candidates", len(resp.Candidates)),
		)
		return "", errors.New("no text content in response")
	}

	return text, nil
}

func (g *geminiService) Model() string {
	return g.modelName
}
