package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/services"
)

type HistoryHandler struct {
	analyzer services.AnalyzerService
	logger   *zap.Logger
}

func NewHistoryHandler(analyzer services.AnalyzerService, log *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		analyzer: analyzer,
		logger:   log,
	}
}

// HandleHistory returns the five most recent analyses, newest first.
func (h *HistoryHandler) HandleHistory(c *fiber.Ctx) error {
	records, err := h.analyzer.History(c.UserContext())
	if err != nil {
		h.logger.Error("❌ Failed to load history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(records)
}
