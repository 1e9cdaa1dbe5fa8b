package session

import (
	"context"
	"errors"

	"github.com/shouni/mestres-ai/pkg/domain"
)

// --- Mocks ---

type mockGenerator struct {
	calls   int
	lastReq domain.GenerationRequest
	lastCtx context.Context

	result  *domain.GenerationResult
	err     error
	panicOn any

	// started/release が設定されていれば呼び出し中に止めるのだ
	started chan struct{}
	release chan struct{}
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.calls++
	m.lastReq = req
	m.lastCtx = ctx
	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		<-m.release
	}
	if m.panicOn != nil {
		panic(m.panicOn)
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.GenerationResult{
		Found: true,
		Image: domain.Image{Data: []byte("png"), MIMEType: "image/png"},
	}, nil
}

type memoryStore struct {
	key     string
	saved   []string
	loadErr error
	saveErr error
}

func (s *memoryStore) Load() (string, error) {
	return s.key, s.loadErr
}

func (s *memoryStore) Save(apiKey string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.key = apiKey
	s.saved = append(s.saved, apiKey)
	return nil
}

var errDiskFull = errors.New("disk full")
