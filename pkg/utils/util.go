package utils

import (
	"fmt"
	"mime"
	"strings"
	"time"
)

// DownloadPrefix はダウンロードファイル名の接頭辞です。
const DownloadPrefix = "mestres-ai"

// DownloadFilename は現在時刻（ミリ秒）からダウンロード用のファイル名を作ります。
// 拡張子はMIMEタイプから決め、判別できなければ .png にします。
func DownloadFilename(now time.Time, mimeType string) string {
	return fmt.Sprintf("%s-%d%s", DownloadPrefix, now.UnixMilli(), extensionFor(mimeType))
}

func extensionFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "", "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".png"
}
