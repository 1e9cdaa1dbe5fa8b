package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockImageModel struct {
	calls     int
	lastModel string
	lastParts []*genai.Part
	lastOpts  gemini.GenerateOptions

	generateFunc func(parts []*genai.Part) (*gemini.Response, error)
}

func (m *mockImageModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	m.lastModel = model
	m.lastParts = parts
	m.lastOpts = opts
	if m.generateFunc != nil {
		return m.generateFunc(parts)
	}
	return imageResponse(&genai.Blob{MIMEType: "image/png", Data: []byte("fake")}), nil
}

type mockProvider struct {
	model      *mockImageModel
	calls      int
	lastAPIKey string
	err        error
}

func (p *mockProvider) ModelFor(ctx context.Context, apiKey string) (ImageModel, error) {
	p.calls++
	p.lastAPIKey = apiKey
	if p.err != nil {
		return nil, p.err
	}
	return p.model, nil
}

// imageResponse は1候補・指定パーツのレスポンスを作るヘルパーなのだ。
func imageResponse(blobs ...*genai.Blob) *gemini.Response {
	parts := make([]*genai.Part, 0, len(blobs))
	for _, b := range blobs {
		parts = append(parts, &genai.Part{InlineData: b})
	}
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: parts},
			}},
		},
	}
}

const (
	// 1x1 の PNG を base64 にしたもの
	tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="
	tinyPNGDataURI = "data:image/png;base64," + tinyPNGBase64
	secondDataURI  = "data:image/jpeg;base64,/9j/4AAQSkZJRg=="
)
