// Package testutil holds in-memory fakes for the pipeline's external collaborators.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"alfredoptarigan/resume-ats/internal/models"
)

// FakeExtractor returns a canned text or error.
type FakeExtractor struct {
	mu    sync.Mutex
	Text  string
	Err   error
	Calls int
	Files []string
}

func (f *FakeExtractor) ExtractText(_ context.Context, fileName string, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.Files = append(f.Files, fileName)
	return f.Text, f.Err
}

// FakeStorage records uploads and returns URL or Err.
type FakeStorage struct {
	mu       sync.Mutex
	URL      string
	Err      error
	Calls    int
	Keys     []string
	Payloads [][]byte
}

func (f *FakeStorage) Upload(_ context.Context, key string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.Keys = append(f.Keys, key)
	f.Payloads = append(f.Payloads, data)
	if f.Err != nil {
		return "", f.Err
	}
	return f.URL, nil
}

// FakeGemini records prompts and returns Response or Err.
type FakeGemini struct {
	mu       sync.Mutex
	Response string
	Err      error
	Calls    int
	Prompts  []string
}

func (f *FakeGemini) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

func (f *FakeGemini) Model() string {
	return "fake-gemini"
}

// FakeAnalysisRepository is an append-only in-memory record store.
type FakeAnalysisRepository struct {
	mu          sync.Mutex
	Records     []models.AnalysisRecord
	CreateErr   error
	FindErr     error
	CreateCalls int
	nextID      int
}

func (f *FakeAnalysisRepository) Create(_ context.Context, record *models.AnalysisRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.nextID++
	record.ID = fmt.Sprintf("record-%d", f.nextID)
	f.Records = append(f.Records, *record)
	return nil
}

func (f *FakeAnalysisRepository) FindRecent(_ context.Context, limit int) ([]models.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}

	records := make([]models.AnalysisRecord, len(f.Records))
	copy(records, f.Records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
