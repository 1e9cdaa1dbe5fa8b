package imgutil

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DefaultQuality は再圧縮時の既定JPEG品質です。
const DefaultQuality = 75

// ErrTooLarge はアップロード上限を超えた場合のエラーです。
var ErrTooLarge = errors.New("image exceeds the upload size limit")

// CompressToJPEG は画像データ（PNG, GIF, JPEG, WebP）をJPEG形式に圧縮します。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UploadOptions はアップロード画像の扱いを決めます。
type UploadOptions struct {
	// MaxBytes を超えるファイルは拒否します。0 は無制限。
	MaxBytes int64
	// CompressAbove を超えるファイルはJPEGに再圧縮してから送ります。0 は圧縮しない。
	CompressAbove int64
	Quality       int
}

// PrepareUpload はアップロードされたファイルを Request Builder が受け取れる data URI にします。
// 圧縮に失敗した場合は元のデータのまま続行します。
func PrepareUpload(data []byte, opts UploadOptions) (string, error) {
	if opts.MaxBytes > 0 && int64(len(data)) > opts.MaxBytes {
		return "", ErrTooLarge
	}

	finalData := data
	if opts.CompressAbove > 0 && int64(len(data)) > opts.CompressAbove {
		quality := opts.Quality
		if quality <= 0 {
			quality = DefaultQuality
		}
		if compressed, err := CompressToJPEG(data, quality); err == nil {
			finalData = compressed
		}
	}
	return ToDataURI(finalData)
}
