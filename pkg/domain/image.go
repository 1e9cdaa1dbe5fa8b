package domain

import (
	"encoding/base64"
	"fmt"
)

// Mode は生成の種類（テキストから作成 / 写真の編集）です。
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Valid は既知のモードかどうかを返します。
func (m Mode) Valid() bool {
	return m == ModeCreate || m == ModeEdit
}

// DefaultImageMIMEType はMIMEタイプが判別できないときに使う値です。
const DefaultImageMIMEType = "image/png"

// GenerationRequest は1回の画像生成要求です。
// 画像はアップロード処理で作られた data URI 文字列のまま保持します。
type GenerationRequest struct {
	Prompt         string
	Mode           Mode
	FunctionID     string // 空文字は未選択
	PrimaryImage   string
	SecondaryImage string // merge-people のときだけ使う
	Credential     string
}

// Image は生成されたバイナリ画像です。
type Image struct {
	Data     []byte
	MIMEType string
}

// DataURI はブラウザでそのまま表示できる data URI を返します。
func (i Image) DataURI() string {
	mimeType := i.MIMEType
	if mimeType == "" {
		mimeType = DefaultImageMIMEType
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(i.Data))
}

// GenerationResult は Response Extractor の結果です。
// Found が false の場合は「画像なし」であり、エラーとは区別されます。
type GenerationResult struct {
	Found        bool
	Image        Image
	FinishReason string
}

// NoResult は画像が含まれていなかったことを表す結果を返します。
func NoResult(finishReason string) *GenerationResult {
	return &GenerationResult{FinishReason: finishReason}
}
