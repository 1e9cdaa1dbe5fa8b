package imgutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotImage はアップロードされたデータが画像として認識できない場合のエラーです。
var ErrNotImage = errors.New("data is not an image")

// ToDataURI はアップロードされたバイト列を data URI に変換します。
func ToDataURI(data []byte) (string, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mimeType)
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}

// StripDataURIPrefix は "data:<mime>;base64," を取り除いたペイロードを返します。
// プレフィックスが無ければ入力をそのまま返します。
func StripDataURIPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if _, payload, ok := strings.Cut(s, ","); ok {
		return payload
	}
	return s
}

// ParseDataURI は data URI（またはプレフィックス無しの base64）をデコードします。
// 戻り値の MIME タイプは、ヘッダー、内容の判別、image/png の順で決まります。
func ParseDataURI(s string) ([]byte, string, error) {
	var mimeType string
	if header, _, ok := strings.Cut(s, ","); ok && strings.HasPrefix(header, "data:") {
		meta := strings.TrimPrefix(header, "data:")
		mimeType, _, _ = strings.Cut(meta, ";")
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(StripDataURIPrefix(s)))
	if err != nil {
		return nil, "", fmt.Errorf("decode base64 payload: %w", err)
	}

	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/png"
	}
	return data, mimeType, nil
}
