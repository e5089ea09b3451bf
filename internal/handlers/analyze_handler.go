package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/services"
)

const (
	msgEmptyFile         = "Empty file"
	msgUnsupportedFormat = "Unsupported file format"
	msgNoText            = "Could not extract text. File might be empty or scanned image."
)

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
	logger      *zap.Logger
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, maxFileSize int64, log *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
		logger:      log,
	}
}

// HandleAnalyze scores an uploaded resume (form file "resume") against the
// job description in form field "jd".
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	jdValues, ok := form.Value["jd"]
	if !ok || len(jdValues) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jd is required",
		})
	}

	resumeFiles, ok := form.File["resume"]
	if !ok || len(resumeFiles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}
	resumeFile := resumeFiles[0]

	if h.maxFileSize > 0 && resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	file, err := resumeFile.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read resume file",
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read resume file",
		})
	}

	outcome, err := h.analyzer.Analyze(c.UserContext(), &models.AnalysisRequest{
		JobDescription: jdValues[0],
		FileName:       resumeFile.Filename,
		Content:        content,
	})
	if err != nil {
		status, message := analyzeErrorResponse(err)
		if status >= fiber.StatusInternalServerError {
			h.logger.Error("❌ Analysis failed", zap.String("file", resumeFile.Filename), zap.Error(err))
		} else {
			h.logger.Info("rejected resume",
				zap.String("file", resumeFile.Filename),
				zap.String("reason", message),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(models.ErrorResponse{Error: message})
	}

	return c.JSON(models.AnalyzeResponse{
		Message: "Success",
		Data:    outcome.Result,
		URL:     outcome.URL,
	})
}

// analyzeErrorResponse maps pipeline errors to a status code and client message.
func analyzeErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrEmptyFile):
		return fiber.StatusBadRequest, msgEmptyFile
	case errors.Is(err, services.ErrUnsupportedFormat):
		return fiber.StatusBadRequest, msgUnsupportedFormat
	case errors.Is(err, services.ErrNoText):
		return fiber.StatusBadRequest, msgNoText
	default:
		// TODO: stop echoing upstream error text once clients no longer rely on it.
		return fiber.StatusInternalServerError, strings.TrimSpace(err.Error())
	}
}
