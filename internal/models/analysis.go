package models

import "time"

// AnalysisRequest is the transient input of one /analyze call.
type AnalysisRequest struct {
	JobDescription string
	FileName       string
	Content        []byte
}

// AnalysisRecord is the persisted history entry. It is written once and never updated.
type AnalysisRecord struct {
	ID      string    `gorm:"type:text;primaryKey" json:"_id"`
	JD      string    `gorm:"column:jd;type:text" json:"jd"`
	Score   *string   `gorm:"column:score;type:text" json:"score"`
	Missing []string  `gorm:"column:missing;type:jsonb;serializer:json" json:"missing"`
	URL     *string   `gorm:"column:url;type:text" json:"url"`
	Date    time.Time `gorm:"column:date;index;not null" json:"date"`
}

func (AnalysisRecord) TableName() string {
	return "analyses"
}
