package repositories

import (
	"context"
	"sort"

	"alfredoptarigan/resume-ats/internal/models"
)

// DefaultHistoryLimit is the number of records the history endpoint returns.
const DefaultHistoryLimit = 5

// AnalysisRepository is the append-only record store. There is no update or delete.
type AnalysisRepository interface {
	Create(ctx context.Context, record *models.AnalysisRecord) error
	FindRecent(ctx context.Context, limit int) ([]models.AnalysisRecord, error)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}

// newestFirst orders records by date descending and caps them at limit.
func newestFirst(records []models.AnalysisRecord, limit int) []models.AnalysisRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	if len(records) > limit {
		records = records[:limit]
	}
	for i := range records {
		if records[i].Missing == nil {
			records[i].Missing = []string{}
		}
	}
	return records
}
