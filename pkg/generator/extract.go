package generator

import (
	"context"
	"log/slog"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/mestres-ai/pkg/domain"
)

// ExtractImage はレスポンスから最初の画像パーツを取り出します。
// 候補やパーツが欠けていてもエラーにはせず、Found=false の結果を返します。
// 2つ目以降の画像パーツは無視します。
func ExtractImage(ctx context.Context, resp *gemini.Response) *domain.GenerationResult {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		slog.WarnContext(ctx, "Geminiのレスポンスに候補がありませんでした")
		return domain.NoResult("")
	}

	// 最初の候補 (Candidate) のみを利用する
	candidate := resp.RawResponse.Candidates[0]
	if candidate == nil {
		slog.WarnContext(ctx, "Geminiのレスポンス候補が空でした")
		return domain.NoResult("")
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			return &domain.GenerationResult{
				Found: true,
				Image: domain.Image{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				},
				FinishReason: string(candidate.FinishReason),
			}
		}
	}

	reason := string(candidate.FinishReason)
	slog.WarnContext(ctx, "レスポンスに画像データが見つかりませんでした", "finish_reason", reason)
	return domain.NoResult(reason)
}
