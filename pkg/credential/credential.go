package credential

import (
	"strings"

	"github.com/shouni/mestres-ai/pkg/domain"
)

// StorageKey はAPIキーを保存するときの固定キーです。
const StorageKey = "mestres_ai_api_key"

// Store は永続化されたAPIキーの読み書きを抽象化します。
type Store interface {
	Load() (string, error)
	Save(apiKey string) error
}

// Resolve は使用するAPIキーを決めます。
// 明示的な値（保存済みキーまたはユーザー入力）が優先され、次にビルド時/環境の既定値を使います。
func Resolve(explicit, fallback string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(fallback); key != "" {
		return key, nil
	}
	return "", domain.ErrMissingCredential
}
