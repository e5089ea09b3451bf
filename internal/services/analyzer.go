package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/repositories"
)

const jdPreviewLength = 50

// AnalyzerService runs the resume pipeline:
// validate → extract → upload → score → persist.
type AnalyzerService interface {
	Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisOutcome, error)
	History(ctx context.Context) ([]models.AnalysisRecord, error)
}

type analyzerService struct {
	extractor TextExtractor
	storage   StorageService
	scorer    ScorerService
	repo      repositories.AnalysisRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewAnalyzerService(
	extractor TextExtractor,
	storage StorageService,
	scorer ScorerService,
	repo repositories.AnalysisRepository,
	log *zap.Logger,
) AnalyzerService {
	return &analyzerService{
		extractor: extractor,
		storage:   storage,
		scorer:    scorer,
		repo:      repo,
		logger:    log,
		now:       time.Now,
	}
}

func (a *analyzerService) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisOutcome, error) {
	if len(req.Content) == 0 {
		return nil, ErrEmptyFile
	}

	log := a.logger.With(zap.String("file", req.FileName), zap.Int("size", len(req.Content)))

	// Step 1: Extract text
	log.Info("📄 Extracting text...")
	text, err := a.extractor.ExtractText(ctx, req.FileName, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedFormat):
			return nil, err
		case errors.Is(err, ErrCorruptDocument):
			return nil, fmt.Errorf("%w: %w", ErrNoText, err)
		default:
			return nil, fmt.Errorf("failed to extract text: %w", err)
		}
	}
	if text == "" {
		return nil, ErrNoText
	}

	now := a.now().UTC()

	// Step 2: Upload original file. Failure here is tolerated.
	key := ObjectKey(now, req.FileName)
	log.Info("☁️ Uploading resume...", zap.String("key", key))

	var fileURL *string
	if url, err := a.storage.Upload(ctx, key, req.Content); err != nil {
		log.Warn("⚠️ Upload failed, continuing without file URL", zap.Error(err))
	} else {
		fileURL = &url
	}

	// Step 3: Score with Gemini
	log.Info("🤖 Analyzing with Gemini...")
	result, err := a.scorer.Score(ctx, text, req.JobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to score resume: %w", err)
	}

	// Step 4: Save record
	score := result.MatchPercentage
	record := &models.AnalysisRecord{
		JD:      TruncateJobDescription(req.JobDescription),
		Score:   &score,
		Missing: result.MissingKeywords,
		URL:     fileURL,
		Date:    now,
	}

	if err := a.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	log.Info("✅ Analysis completed",
		zap.String("record_id", record.ID),
		zap.String("match_percentage", score),
	)

	return &models.AnalysisOutcome{
		Result: result,
		URL:    fileURL,
		Record: record,
	}, nil
}

func (a *analyzerService) History(ctx context.Context) ([]models.AnalysisRecord, error) {
	records, err := a.repo.FindRecent(ctx, repositories.DefaultHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if records == nil {
		records = []models.AnalysisRecord{}
	}
	return records, nil
}

// TruncateJobDescription keeps the first 50 characters of the job description
// and always appends "...".
func TruncateJobDescription(jd string) string {
	runes := []rune(jd)
	if len(runes) > jdPreviewLength {
		runes = runes[:jdPreviewLength]
	}
	return string(runes) + "..."
}
