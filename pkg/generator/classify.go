package generator

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shouni/mestres-ai/pkg/domain"
	"google.golang.org/genai"
)

// ErrorKind は生成失敗の分類です。
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindMissingCredential
	KindAuthentication
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindMissingCredential:
		return "missing_credential"
	case KindAuthentication:
		return "authentication"
	default:
		return "transport"
	}
}

// authSignatures はメッセージ文字列での判定に使う文言です。
// genai.APIError を取り出せないエラー向けの互換処理で、文言の変更に弱い点に注意。
var authSignatures = []string{
	"404",
	"Requested entity was not found",
}

// Classify はエラーを Session Controller が扱う種類に振り分けます。
// まず構造化されたエラー（センチネル、genai.APIError）で判定し、最後に文字列一致を試します。
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, domain.ErrMissingCredential) {
		return KindMissingCredential
	}
	if errors.Is(err, domain.ErrValidation) {
		return KindValidation
	}

	if apiErr, ok := asAPIError(err); ok {
		if isAuthAPIError(apiErr) {
			return KindAuthentication
		}
		return KindTransport
	}

	msg := err.Error()
	for _, sig := range authSignatures {
		if strings.Contains(msg, sig) {
			return KindAuthentication
		}
	}
	return KindTransport
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

// isAuthAPIError は「キーが無効」と「モデルが使えない」を区別せずに認証エラーとして扱います。
func isAuthAPIError(apiErr genai.APIError) bool {
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	switch apiErr.Status {
	case "UNAUTHENTICATED", "PERMISSION_DENIED", "NOT_FOUND":
		return true
	}
	return strings.Contains(apiErr.Message, "Requested entity was not found")
}
