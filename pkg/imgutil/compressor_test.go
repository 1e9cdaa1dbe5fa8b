package imgutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createDummyImageData はグラデーションの入った 16x16 の写真もどきを作るのだ
func createDummyImageData(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 16), uint8(y * 16), 128, 255})
		}
	}

	buf := new(bytes.Buffer)
	switch format {
	case "png":
		require.NoError(t, png.Encode(buf, img))
	case "jpeg":
		require.NoError(t, jpeg.Encode(buf, img, nil))
	default:
		t.Fatalf("unsupported format: %s", format)
	}
	return buf.Bytes()
}

// loadWebP はブラウザから届くことの多い WebP のサンプル（75x100 ロスレス）なのだ
func loadWebP(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/gopher.lossless.webp")
	require.NoError(t, err)
	require.Equal(t, "image/webp", http.DetectContentType(data))
	return data
}

func decodedFormat(t *testing.T, data []byte) (string, image.Config) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return format, cfg
}

func TestCompressToJPEG(t *testing.T) {
	t.Run("WebPをデコードしてJPEGにできるのだ", func(t *testing.T) {
		got, err := CompressToJPEG(loadWebP(t), DefaultQuality)
		require.NoError(t, err)

		format, cfg := decodedFormat(t, got)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 75, cfg.Width)
		assert.Equal(t, 100, cfg.Height)
	})

	t.Run("PNGもJPEGにできるのだ", func(t *testing.T) {
		got, err := CompressToJPEG(createDummyImageData(t, "png"), DefaultQuality)
		require.NoError(t, err)
		format, _ := decodedFormat(t, got)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("画像でないバイト列はエラーなのだ", func(t *testing.T) {
		_, err := CompressToJPEG([]byte("%PDF-1.7 not a photo"), DefaultQuality)
		assert.Error(t, err)
	})
}

func TestPrepareUpload_Compression(t *testing.T) {
	webpData := loadWebP(t)

	t.Run("閾値を超えたWebPはJPEGのdata URIになるのだ", func(t *testing.T) {
		uri, err := PrepareUpload(webpData, UploadOptions{CompressAbove: 100})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))

		raw, err := base64.StdEncoding.DecodeString(StripDataURIPrefix(uri))
		require.NoError(t, err)
		format, cfg := decodedFormat(t, raw)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 75, cfg.Width)
	})

	t.Run("閾値以下のWebPはそのまま送るのだ", func(t *testing.T) {
		uri, err := PrepareUpload(webpData, UploadOptions{CompressAbove: int64(len(webpData))})
		require.NoError(t, err)
		assert.Equal(t, "data:image/webp;base64,"+base64.StdEncoding.EncodeToString(webpData), uri)
	})

	t.Run("画像でないファイルは圧縮に失敗しても拒否されるのだ", func(t *testing.T) {
		_, err := PrepareUpload([]byte("%PDF-1.7 not a photo"), UploadOptions{CompressAbove: 1})
		assert.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("上限は圧縮前のサイズで判定するのだ", func(t *testing.T) {
		_, err := PrepareUpload(webpData, UploadOptions{MaxBytes: int64(len(webpData)) - 1, CompressAbove: 1})
		assert.ErrorIs(t, err, ErrTooLarge)
	})
}
