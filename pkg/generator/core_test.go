package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/mestres-ai/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGenerator(t *testing.T) {
	t.Run("nilチェック: providerが無い場合はエラーを返すのだ", func(t *testing.T) {
		_, err := NewGenerator(nil, "model", "")
		assert.Error(t, err)
	})

	t.Run("モデル名が空なら既定モデルを使うのだ", func(t *testing.T) {
		g, err := NewGenerator(&mockProvider{}, "", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, g.Model())
	})
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: 正しいパーツとアスペクト比がモデルに渡されるのだ", func(t *testing.T) {
		model := &mockImageModel{}
		provider := &mockProvider{model: model}
		g, err := NewGenerator(provider, "gemini-2.5-flash-image", "")
		require.NoError(t, err)

		result, err := g.Generate(ctx, domain.GenerationRequest{
			Prompt:       "my dog",
			Mode:         domain.ModeEdit,
			FunctionID:   "luxury-life",
			PrimaryImage: tinyPNGDataURI,
			Credential:   "user-key",
		})
		require.NoError(t, err)

		assert.True(t, result.Found)
		assert.Equal(t, []byte("fake"), result.Image.Data)
		assert.Equal(t, "user-key", provider.lastAPIKey)
		assert.Equal(t, 1, model.calls)
		assert.Equal(t, "gemini-2.5-flash-image", model.lastModel)
		assert.Equal(t, SquareAspectRatio, model.lastOpts.AspectRatio)
		require.Len(t, model.lastParts, 2)
		assert.NotNil(t, model.lastParts[0].InlineData)
		assert.Contains(t, model.lastParts[1].Text, "my dog. place subject in a luxurious setting")
	})

	t.Run("リクエストにキーが無ければ既定のキーを使うのだ", func(t *testing.T) {
		provider := &mockProvider{model: &mockImageModel{}}
		g, _ := NewGenerator(provider, "", "build-default")

		_, err := g.Generate(ctx, domain.GenerationRequest{Prompt: "sunset", Mode: domain.ModeCreate})
		require.NoError(t, err)
		assert.Equal(t, "build-default", provider.lastAPIKey)
	})

	t.Run("キーがどこにも無ければ通信前に失敗するのだ", func(t *testing.T) {
		model := &mockImageModel{}
		provider := &mockProvider{model: model}
		g, _ := NewGenerator(provider, "", "")

		_, err := g.Generate(ctx, domain.GenerationRequest{Prompt: "sunset", Mode: domain.ModeCreate})
		assert.ErrorIs(t, err, domain.ErrMissingCredential)
		assert.Equal(t, 0, provider.calls)
		assert.Equal(t, 0, model.calls)
	})

	t.Run("編集モードで画像が無ければ通信しないのだ", func(t *testing.T) {
		model := &mockImageModel{}
		g, _ := NewGenerator(&mockProvider{model: model}, "", "key")

		_, err := g.Generate(ctx, domain.GenerationRequest{Mode: domain.ModeEdit})
		assert.ErrorIs(t, err, domain.ErrMissingImage)
		assert.Equal(t, 0, model.calls)
	})

	t.Run("失敗: モデルのエラーはそのまま返るのだ", func(t *testing.T) {
		expectedErr := errors.New("connection reset by peer")
		model := &mockImageModel{
			generateFunc: func(parts []*genai.Part) (*gemini.Response, error) {
				return nil, expectedErr
			},
		}
		g, _ := NewGenerator(&mockProvider{model: model}, "", "key")

		_, err := g.Generate(ctx, domain.GenerationRequest{Prompt: "x", Mode: domain.ModeCreate})
		assert.Same(t, expectedErr, err)
		assert.Equal(t, 1, model.calls, "no retry")
	})

	t.Run("失敗: providerのエラーもそのまま返るのだ", func(t *testing.T) {
		expectedErr := errors.New("bad client config")
		g, _ := NewGenerator(&mockProvider{err: expectedErr}, "", "key")

		_, err := g.Generate(ctx, domain.GenerationRequest{Prompt: "x", Mode: domain.ModeCreate})
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("画像が無いレスポンスはエラーではなく未検出になるのだ", func(t *testing.T) {
		model := &mockImageModel{
			generateFunc: func(parts []*genai.Part) (*gemini.Response, error) {
				return &gemini.Response{RawResponse: &genai.GenerateContentResponse{}}, nil
			},
		}
		g, _ := NewGenerator(&mockProvider{model: model}, "", "key")

		result, err := g.Generate(ctx, domain.GenerationRequest{Prompt: "x", Mode: domain.ModeCreate})
		require.NoError(t, err)
		assert.False(t, result.Found)
	})
}
