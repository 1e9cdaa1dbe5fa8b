package domain

import (
	"errors"
	"fmt"
)

// ErrValidation は送信前に検出される入力不備をまとめる親エラーです。
var ErrValidation = errors.New("validation failed")

var (
	ErrMissingPrompt         = fmt.Errorf("%w: prompt is required in create mode", ErrValidation)
	ErrMissingImage          = fmt.Errorf("%w: primary image is required in edit mode", ErrValidation)
	ErrMissingSecondaryImage = fmt.Errorf("%w: secondary image is required to merge people", ErrValidation)
	ErrInvalidImage          = fmt.Errorf("%w: image is not a valid base64 payload", ErrValidation)
	ErrUnknownFunction       = fmt.Errorf("%w: unknown function for the current mode", ErrValidation)
	ErrInvalidMode           = fmt.Errorf("%w: unknown mode", ErrValidation)
	ErrEmptyCredential       = fmt.Errorf("%w: api key must not be empty", ErrValidation)
)

// ErrMissingCredential はAPIキーがどこにも設定されていない場合のエラーです。
// ネットワーク呼び出しの前に返されます。
var ErrMissingCredential = errors.New("api key not found")
