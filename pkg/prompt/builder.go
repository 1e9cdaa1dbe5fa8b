package prompt

import (
	"strings"

	"github.com/shouni/mestres-ai/pkg/domain"
)

const (
	// FallbackCreatePrompt は作成モードでプロンプトが空のときの代替文です。
	FallbackCreatePrompt = "A creative, high-quality image."
	// QualitySuffix は quality への言及がないプロンプトに付け足す文言です。
	QualitySuffix = ", high quality, highly detailed, 8k resolution"

	modifierDelimiter = ". "
	qualityKeyword    = "quality"
)

// Build はユーザー入力・モード・ファンクションから最終プロンプトを組み立てます。
// 同じ入力には常に同じ結果を返し、品質サフィックスは二重に付きません。
func Build(text string, mode domain.Mode, functionID string) string {
	finalPrompt := strings.TrimSpace(text)
	if finalPrompt == "" && mode == domain.ModeCreate {
		finalPrompt = FallbackCreatePrompt
	}

	if clause, ok := Modifier(functionID); ok {
		if finalPrompt == "" {
			finalPrompt = clause
		} else {
			finalPrompt = finalPrompt + modifierDelimiter + clause
		}
	}

	return WithQuality(finalPrompt)
}

// WithQuality は quality を含まないプロンプトにだけサフィックスを付けます。
func WithQuality(p string) string {
	if strings.Contains(strings.ToLower(p), qualityKeyword) {
		return p
	}
	return p + QualitySuffix
}
