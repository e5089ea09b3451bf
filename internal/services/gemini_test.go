package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeContentGenerator struct {
	model    string
	contents []*genai.Content
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeContentGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func TestGeminiService_GenerateText(t *testing.T) {
	gen := &fakeContentGenerator{resp: textResponse(`{"ok":true}`)}
	svc := newGeminiService(gen, "gemini-2.5-flash", zap.NewNop())

	text, err := svc.GenerateText(context.Background(), "score this")
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, text)
	assert.Equal(t, "gemini-2.5-flash", gen.model)
	require.Len(t, gen.contents, 1)
	require.Len(t, gen.contents[0].Parts, 1)
	assert.Equal(t, "score this", gen.contents[0].Parts[0].Text)
}

func TestGeminiService_DefaultModel(t *testing.T) {
	svc := newGeminiService(&fakeContentGenerator{}, "  ", zap.NewNop())
	assert.Equal(t, "gemini-flash-latest", svc.Model())
}

func TestGeminiService_Errors(t *testing.T) {
	upstream := errors.New("503 unavailable")

	tests := []struct {
		name string
		gen  *fakeContentGenerator
		want string
	}{
		{name: "api error", gen: &fakeContentGenerator{err: upstream}, want: "failed to generate text"},
		{name: "nil response", gen: &fakeContentGenerator{}, want: "nil response"},
		{name: "no candidates", gen: &fakeContentGenerator{resp: &genai.GenerateContentResponse{}}, want: "no text content"},
		{name: "blank text", gen: &fakeContentGenerator{resp: textResponse("  \n")}, want: "no text content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newGeminiService(tt.gen, "m", zap.NewNop())

			text, err := svc.GenerateText(context.Background(), "prompt")
			require.Error(t, err)
			assert.Empty(t, text)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewGenAIClient_RequiresKey(t *testing.T) {
	_, err := NewGenAIClient(context.Background(), " ")
	assert.Error(t, err)
}
