package generator

import (
	"fmt"
	"strings"

	"github.com/shouni/mestres-ai/pkg/domain"
	"github.com/shouni/mestres-ai/pkg/imgutil"
	"github.com/shouni/mestres-ai/pkg/prompt"
	"google.golang.org/genai"
)

// BuildRequest は GenerationRequest から送信用のパーツ列を組み立てます。
// Session Controller でも事前チェックしますが、直接呼ばれた場合はここが最終判定です。
func BuildRequest(req domain.GenerationRequest) (*PreparedRequest, error) {
	if req.Mode == domain.ModeEdit && strings.TrimSpace(req.PrimaryImage) == "" {
		return nil, domain.ErrMissingImage
	}
	merging := req.FunctionID == domain.FunctionMergePeople
	if merging && strings.TrimSpace(req.SecondaryImage) == "" {
		return nil, domain.ErrMissingSecondaryImage
	}

	parts := make([]*genai.Part, 0, 3)

	// 画像は編集モードのときだけ送る
	if req.Mode == domain.ModeEdit {
		primary, err := toPart(req.PrimaryImage)
		if err != nil {
			return nil, err
		}
		parts = append(parts, primary)

		if merging {
			secondary, err := toPart(req.SecondaryImage)
			if err != nil {
				return nil, err
			}
			parts = append(parts, secondary)
		}
	}

	finalPrompt := prompt.Build(req.Prompt, req.Mode, req.FunctionID)
	imageCount := len(parts)
	parts = append(parts, &genai.Part{Text: finalPrompt})

	return &PreparedRequest{
		Prompt:     finalPrompt,
		Parts:      parts,
		ImageCount: imageCount,
	}, nil
}

// toPart は data URI を genai.Part (InlineData) に変換します。
func toPart(dataURI string) (*genai.Part, error) {
	data, mimeType, err := imgutil.ParseDataURI(dataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidImage
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: mimeType,
			Data:     data,
		},
	}, nil
}
