package config

import (
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
)

// BuildAPIKey はビルド時に埋め込む既定のAPIキーです。
//
//	go build -ldflags "-X github.com/shouni/mestres-ai/internal/config.BuildAPIKey=..."
var BuildAPIKey string

const (
	DefaultAddr               = ":8080"
	DefaultRequestTimeout     = 120 * time.Second
	DefaultUploadMaxBytes     = 10 << 20
	DefaultUploadCompressSize = 2 << 20
	devSessionSecret          = "mestres-ai-dev-secret"
)

type Config struct {
	APIKey              string
	Model               string
	Addr                string
	SessionSecret       string
	CredentialFile      string
	RequestTimeout      time.Duration
	UploadMaxBytes      int64
	UploadCompressBytes int64
	LogLevel            string
	LogFormat           string
	GinMode             string
	// EphemeralSecret は SessionSecret が起動ごとの乱数であることを示します。
	// 再起動するとブラウザのセッションとクッキー内のキーは読めなくなります。
	EphemeralSecret bool
}

// Load は .env.local / .env と環境変数から設定を読み込みます。
// 既に設定済みの値は上書きされないため、環境変数 > .env.local > .env の順に優先されます。
// ファイルが無くてもエラーにはしません。
func Load() Config {
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}

	c := Config{
		APIKey:              getenv("GEMINI_API_KEY", BuildAPIKey),
		Model:               getenv("MESTRES_MODEL", ""),
		Addr:                getenv("MESTRES_ADDR", DefaultAddr),
		SessionSecret:       getenv("MESTRES_SESSION_SECRET", ""),
		CredentialFile:      getenv("MESTRES_CREDENTIAL_FILE", ""),
		RequestTimeout:      getDuration("MESTRES_REQUEST_TIMEOUT", DefaultRequestTimeout),
		UploadMaxBytes:      getInt64("MESTRES_UPLOAD_MAX_BYTES", DefaultUploadMaxBytes),
		UploadCompressBytes: getInt64("MESTRES_UPLOAD_COMPRESS_BYTES", DefaultUploadCompressSize),
		LogLevel:            getenv("LOG_LEVEL", "info"),
		LogFormat:           getenv("LOG_FORMAT", "text"),
		GinMode:             getenv("GIN_MODE", "release"),
	}
	c.SessionSecret, c.EphemeralSecret = sessionSecret(c.SessionSecret, c.GinMode)
	return c
}

// sessionSecret はクッキーの署名・暗号化に使うシークレットを決めます。
// 固定の開発用の値は debug / test モードでしか使いません。
func sessionSecret(configured, ginMode string) (string, bool) {
	if configured != "" {
		return configured, false
	}
	switch ginMode {
	case "debug", "test":
		slog.Warn("MESTRES_SESSION_SECRET が未設定のため開発用の値を使います", "gin_mode", ginMode)
		return devSessionSecret, false
	}

	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		// 空のシークレットではサーバーが起動しない
		slog.Error("セッション用のシークレットを生成できませんでした")
		return "", false
	}
	slog.Warn("MESTRES_SESSION_SECRET が未設定のため乱数のシークレットを使います。再起動するとセッションは引き継がれません")
	return hex.EncodeToString(key), true
}

// NewLogger は設定に従ったロガーを作り、デフォルトに設定します。
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	// 秒数だけの指定も受け付ける
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	slog.Warn("無効な時間指定のため既定値を使います", "key", k, "value", v)
	return def
}

func getInt64(k string, def int64) int64 {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		slog.Warn("無効な数値のため既定値を使います", "key", k, "value", v)
		return def
	}
	return n
}
