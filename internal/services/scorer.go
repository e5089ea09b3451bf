package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ats/internal/logger"
	"alfredoptarigan/resume-ats/internal/models"
)

const defaultMaxLogLength = 200

type ScorerService interface {
	Score(ctx context.Context, resumeText, jobDescription string) (*models.ScoreResult, error)
}

type scorerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	logger        *zap.Logger
	maxLogLen     int
}

func NewScorerService(gemini GeminiService, log *zap.Logger) ScorerService {
	return &scorerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		logger:        log,
		maxLogLen:     defaultMaxLogLength,
	}
}

func (s *scorerService) Score(ctx context.Context, resumeText, jobDescription string) (*models.ScoreResult, error) {
	prompt := s.promptBuilder.BuildATSPrompt(resumeText, jobDescription)

	s.logger.Debug("gemini generate content request",
		zap.String("model", s.gemini.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	result, err := ParseScoreResponse(raw)
	if err != nil {
		s.logger.Warn("failed to parse gemini response",
			zap.Error(err),
			zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
		)
		return nil, err
	}

	return result, nil
}

type percentage string

// UnmarshalJSON accepts "85", 85 and 85.5 alike.
func (p *percentage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = percentage(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("match_percentage must be a string or number, got %s", data)
	}
	*p = percentage(n.String())
	return nil
}

type scorePayload struct {
	MatchPercentage *percentage `json:"match_percentage"`
	MissingKeywords []string    `json:"missing_keywords"`
	Summary         *string     `json:"summary"`
}

// ParseScoreResponse decodes the model output into a ScoreResult. The output
// may be wrapped in a single Markdown code fence; anything else around the
// JSON object is rejected.
func ParseScoreResponse(raw string) (*models.ScoreResult, error) {
	body, err := stripCodeFence(raw)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(strings.NewReader(body))

	var payload scorePayload
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedScore, err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrMalformedScore)
	}

	if payload.MatchPercentage == nil || *payload.MatchPercentage == "" {
		return nil, fmt.Errorf("%w: match_percentage is missing", ErrMalformedScore)
	}
	if payload.Summary == nil {
		return nil, fmt.Errorf("%w: summary is missing", ErrMalformedScore)
	}

	missing := payload.MissingKeywords
	if missing == nil {
		missing = []string{}
	}

	return &models.ScoreResult{
		MatchPercentage: string(*payload.MatchPercentage),
		MissingKeywords: missing,
		Summary:         *payload.Summary,
	}, nil
}

func stripCodeFence(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrMalformedScore)
	}

	if !strings.HasPrefix(text, "```") {
		return text, nil
	}

	body := strings.TrimPrefix(text, "```")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
	}
	body = strings.TrimSpace(body)

	if !strings.HasSuffix(body, "```") {
		return "", fmt.Errorf("%w: unterminated code fence", ErrMalformedScore)
	}

	return strings.TrimSpace(strings.TrimSuffix(body, "```")), nil
}
