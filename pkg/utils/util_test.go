package utils

import (
	"testing"
	"time"
)

func TestDownloadFilename(t *testing.T) {
	now := time.UnixMilli(1760000000123)

	tests := []struct {
		name     string
		mimeType string
		want     string
	}{
		{"PNG", "image/png", "mestres-ai-1760000000123.png"},
		{"MIMEタイプなしはPNG", "", "mestres-ai-1760000000123.png"},
		{"JPEG", "image/jpeg", "mestres-ai-1760000000123.jpg"},
		{"未知のタイプはPNG", "application/x-unknown-thing", "mestres-ai-1760000000123.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DownloadFilename(now, tt.mimeType); got != tt.want {
				t.Errorf("DownloadFilename() = %s, want %s", got, tt.want)
			}
		})
	}
}
