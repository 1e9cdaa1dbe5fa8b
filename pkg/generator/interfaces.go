package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/mestres-ai/pkg/domain"
	"google.golang.org/genai"
)

// ImageModel は画像生成モデルへの1往復を表します。
// go-gemini-client の GenerativeModel と同じシグネチャです。
type ImageModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// ModelProvider はAPIキーごとに ImageModel を用意します。
type ModelProvider interface {
	ModelFor(ctx context.Context, apiKey string) (ImageModel, error)
}

// ImageGenerator は Session Controller が利用する生成パイプラインの窓口です。
type ImageGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
}
