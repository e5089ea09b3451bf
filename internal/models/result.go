package models

// ScoreResult is the model's verdict for one resume against one job description.
type ScoreResult struct {
	MatchPercentage string   `json:"match_percentage"`
	MissingKeywords []string `json:"missing_keywords"`
	Summary         string   `json:"summary"`
}

// AnalysisOutcome is what a successful pipeline run hands back to the HTTP layer.
type AnalysisOutcome struct {
	Result *ScoreResult
	URL    *string
	Record *AnalysisRecord
}

type AnalyzeResponse struct {
	Message string       `json:"message"`
	Data    *ScoreResult `json:"data"`
	URL     *string      `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
