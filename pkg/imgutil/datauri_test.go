package imgutil

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDataURI(t *testing.T) {
	t.Run("PNGはimage/pngのdata URIになること", func(t *testing.T) {
		pngData := createDummyImageData(t, "png")
		uri, err := ToDataURI(pngData)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	})

	t.Run("画像以外は拒否すること", func(t *testing.T) {
		_, err := ToDataURI([]byte("plain text, not an image"))
		assert.ErrorIs(t, err, ErrNotImage)
	})
}

func TestStripDataURIPrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"プレフィックスあり", "data:image/png;base64,QUJD", "QUJD"},
		{"プレフィックスなし", "QUJD", "QUJD"},
		{"カンマのないdata", "data:broken", "data:broken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDataURIPrefix(tt.in))
		})
	}
}

func TestParseDataURI(t *testing.T) {
	jpegData := createDummyImageData(t, "jpeg")
	payload := base64.StdEncoding.EncodeToString(jpegData)

	t.Run("ヘッダーのMIMEタイプを優先すること", func(t *testing.T) {
		data, mimeType, err := ParseDataURI("data:image/webp;base64," + payload)
		require.NoError(t, err)
		assert.Equal(t, "image/webp", mimeType)
		assert.Equal(t, jpegData, data)
	})

	t.Run("プレフィックスなしは内容から判別すること", func(t *testing.T) {
		_, mimeType, err := ParseDataURI(payload)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mimeType)
	})

	t.Run("判別できなければimage/pngとすること", func(t *testing.T) {
		_, mimeType, err := ParseDataURI(base64.StdEncoding.EncodeToString([]byte("??")))
		require.NoError(t, err)
		assert.Equal(t, "image/png", mimeType)
	})

	t.Run("base64として不正ならエラーを返すこと", func(t *testing.T) {
		_, _, err := ParseDataURI("data:image/png;base64,***")
		assert.Error(t, err)
	})
}

func TestPrepareUpload(t *testing.T) {
	pngData := createDummyImageData(t, "png")

	t.Run("上限を超えたら拒否すること", func(t *testing.T) {
		_, err := PrepareUpload(pngData, UploadOptions{MaxBytes: 1})
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("閾値を超えたらJPEGに再圧縮すること", func(t *testing.T) {
		uri, err := PrepareUpload(pngData, UploadOptions{CompressAbove: 1})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	})

	t.Run("閾値以下はそのまま変換すること", func(t *testing.T) {
		uri, err := PrepareUpload(pngData, UploadOptions{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	})
}
