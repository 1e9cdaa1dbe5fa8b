package adapters

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/mestres-ai/pkg/domain"
	"github.com/shouni/mestres-ai/pkg/generator"
	"google.golang.org/genai"
)

// responseModalities は画像とテキストの両方を受け取る指定です。
var responseModalities = []string{"TEXT", "IMAGE"}

// ProviderOptions は GenAIProvider の設定です。
type ProviderOptions struct {
	// BaseURL は Gemini API のエンドポイントを差し替える場合に指定します（テスト用）。
	BaseURL string
	Timeout time.Duration
}

// GenAIProvider は APIキーごとに genai.Client を生成する ModelProvider です。
type GenAIProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewGenAIProvider は GenAIProvider を初期化します。
func NewGenAIProvider(opts ProviderOptions) *GenAIProvider {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GenAIProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSpace(opts.BaseURL),
	}
}

// ModelFor は指定キーで認証する ImageModel を返します。
// genai.NewClient は通信を行わないため、呼び出しごとに作り直します。
func (p *GenAIProvider) ModelFor(ctx context.Context, apiKey string) (generator.ImageModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.ErrMissingCredential
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
	}
	if p.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの初期化に失敗しました: %w", err)
	}
	return &GenAIModel{client: client}, nil
}

// GenAIModel は genai SDK で generateContent を呼び出す ImageModel です。
type GenAIModel struct {
	client *genai.Client
}

// GenerateWithParts はパーツ列を1つの user コンテンツとして送信します。
// SDK のエラーはそのまま返します。
func (m *GenAIModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: responseModalities,
	}
	if opts.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}
	if opts.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := m.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}
