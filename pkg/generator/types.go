package generator

import "google.golang.org/genai"

const (
	// DefaultModel は画像生成に使う既定のモデルです。
	DefaultModel = "gemini-2.5-flash-image"
	// SquareAspectRatio は常に要求する 1:1 のアスペクト比です。
	SquareAspectRatio = "1:1"
)

// PreparedRequest は Request Builder の出力で、そのままモデルに渡せる形です。
// Parts は [元画像, 2枚目の画像, テキスト] の順に並びます。
type PreparedRequest struct {
	Prompt     string
	Parts      []*genai.Part
	ImageCount int
}
