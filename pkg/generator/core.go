package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/mestres-ai/pkg/credential"
	"github.com/shouni/mestres-ai/pkg/domain"
)

// Generator は Request Builder、モデル呼び出し、Response Extractor をつなぐ生成クライアントです。
type Generator struct {
	provider          ModelProvider
	model             string
	defaultCredential string
}

// NewGenerator は依存関係を注入して Generator を初期化します。
// defaultCredential はリクエストにキーが無いときに使うビルド時/環境の既定値です。
func NewGenerator(provider ModelProvider, model, defaultCredential string) (*Generator, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider (ModelProvider) is required")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		provider:          provider,
		model:             model,
		defaultCredential: defaultCredential,
	}, nil
}

// Model は使用するモデル名を返します。
func (g *Generator) Model() string {
	return g.model
}

// Generate は1回の画像生成を行います。
// APIキーが無い場合はネットワークに触れる前に domain.ErrMissingCredential を返します。
// モデル側のエラーはラップせずにそのまま返します。
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	apiKey, err := credential.Resolve(req.Credential, g.defaultCredential)
	if err != nil {
		return nil, err
	}

	prepared, err := BuildRequest(req)
	if err != nil {
		return nil, err
	}

	return g.Execute(ctx, apiKey, prepared)
}

// Execute は組み立て済みのリクエストを1回だけ送信し、結果を解析します。
func (g *Generator) Execute(ctx context.Context, apiKey string, prepared *PreparedRequest) (*domain.GenerationResult, error) {
	model, err := g.provider.ModelFor(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Geminiに画像生成をリクエストします",
		"model", g.model, "total_parts", len(prepared.Parts), "images", prepared.ImageCount)

	resp, err := model.GenerateWithParts(ctx, g.model, prepared.Parts, gemini.GenerateOptions{
		AspectRatio: SquareAspectRatio,
	})
	if err != nil {
		return nil, err
	}

	return ExtractImage(ctx, resp), nil
}
