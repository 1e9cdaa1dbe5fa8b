package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shouni/mestres-ai/pkg/credential"
	"github.com/shouni/mestres-ai/pkg/domain"
	"github.com/shouni/mestres-ai/pkg/generator"
	"github.com/shouni/mestres-ai/pkg/utils"
)

var (
	// ErrBusy は生成中に状態を変更しようとした場合のエラーです。
	ErrBusy = errors.New("generation in progress")
	// ErrNoResult はまだ生成結果が無い状態でダウンロードしようとした場合のエラーです。
	ErrNoResult = errors.New("no generated image to download")
)

// Download はダウンロード用の生成画像です。
type Download struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Option は Controller の設定を変更します。
type Option func(*Controller)

// WithCredentialStore は保存済みキーの読み込み先と保存先を指定します。
func WithCredentialStore(store credential.Store) Option {
	return func(c *Controller) { c.store = store }
}

// WithCredential は起動時点で分かっているキーを指定します。保存済みキーより優先します。
func WithCredential(apiKey string) Option {
	return func(c *Controller) { c.credential = strings.TrimSpace(apiKey) }
}

// WithCredentialPromptHook はキー入力フォームを開くときに呼ばれる関数を指定します。
func WithCredentialPromptHook(fn func()) Option {
	return func(c *Controller) { c.onCredentialPrompt = fn }
}

// WithClock はダウンロード名に使う時刻関数を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller は1画面分の状態遷移（Idle → Generating → Succeeded/Failed）を管理します。
// 同時に実行される生成リクエストは常に1つまでです。
type Controller struct {
	mu    sync.Mutex
	state domain.SessionState
	// result は ResultImage の元データ
	result *domain.Image

	credential         string
	generator          generator.ImageGenerator
	store              credential.Store
	onCredentialPrompt func()
	now                func() time.Time
}

// NewController は生成パイプラインを注入して Controller を初期化します。
func NewController(gen generator.ImageGenerator, opts ...Option) (*Controller, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator (ImageGenerator) is required")
	}

	c := &Controller{
		state:     domain.NewSessionState(),
		generator: gen,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.credential == "" && c.store != nil {
		key, err := c.store.Load()
		if err != nil {
			slog.Warn("保存済みのAPIキーを読み込めませんでした", "error", err)
		}
		c.credential = key
	}
	c.state.HasCredential = c.credential != ""

	return c, nil
}

// Snapshot は現在の状態のコピーを返します。
func (c *Controller) Snapshot() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetMode はモードを切り替え、選択中のファンクションとエラー表示を消します。
func (c *Controller) SetMode(mode domain.Mode) error {
	if !mode.Valid() {
		return domain.ErrInvalidMode
	}
	return c.mutate(func(s *domain.SessionState) error {
		s.Mode = mode
		s.FunctionID = ""
		s.LastError = ""
		return nil
	})
}

// SetPrompt はプロンプト文を更新します。
func (c *Controller) SetPrompt(text string) error {
	return c.mutate(func(s *domain.SessionState) error {
		s.Prompt = text
		return nil
	})
}

// SelectFunction はカードを選択します。選択中のカードをもう一度選ぶと解除されます。
// 空文字は解除として扱います。
func (c *Controller) SelectFunction(id string) error {
	return c.mutate(func(s *domain.SessionState) error {
		if id == "" || id == s.FunctionID {
			s.FunctionID = ""
			return nil
		}
		if _, ok := domain.LookupFunction(s.Mode, id); !ok {
			return domain.ErrUnknownFunction
		}
		s.FunctionID = id
		return nil
	})
}

// ClearFunction は選択中のカードを解除します。
func (c *Controller) ClearFunction() error {
	return c.mutate(func(s *domain.SessionState) error {
		s.FunctionID = ""
		return nil
	})
}

// SetPrimaryImage は編集対象の写真（data URI）を設定します。
func (c *Controller) SetPrimaryImage(dataURI string) error {
	return c.mutate(func(s *domain.SessionState) error {
		s.PrimaryImage = dataURI
		return nil
	})
}

// SetSecondaryImage は merge-people 用の2枚目の写真を設定します。
func (c *Controller) SetSecondaryImage(dataURI string) error {
	return c.mutate(func(s *domain.SessionState) error {
		s.SecondaryImage = dataURI
		return nil
	})
}

// ClearPrimaryImage は1枚目の写真を外します。
func (c *Controller) ClearPrimaryImage() error {
	return c.SetPrimaryImage("")
}

// ClearSecondaryImage は2枚目の写真を外します。
func (c *Controller) ClearSecondaryImage() error {
	return c.SetSecondaryImage("")
}

// Generate は事前チェックの後、生成リクエストを1回だけ送ります。
// 生成中に呼ばれた場合は何もせず ErrBusy を返します。
// 送信したリクエストは呼び出し元のキャンセルでは中断されません。
func (c *Controller) Generate(ctx context.Context) (domain.SessionState, error) {
	c.mu.Lock()
	if c.state.Phase == domain.PhaseGenerating {
		snapshot := c.state
		c.mu.Unlock()
		return snapshot, ErrBusy
	}

	if err := precheck(c.state); err != nil {
		c.state.Phase = domain.PhaseIdle
		c.state.LastError = validationMessage(err)
		snapshot := c.state
		c.mu.Unlock()
		slog.InfoContext(ctx, "生成前のチェックで止まりました", "reason", err)
		return snapshot, nil
	}

	req := c.buildRequest()
	c.state.Phase = domain.PhaseGenerating
	c.state.InFlight = true
	c.state.LastError = ""
	c.mu.Unlock()

	result, err := c.invoke(ctx, req)

	c.mu.Lock()
	promptOpened := c.finish(ctx, result, err)
	snapshot := c.state
	hook := c.onCredentialPrompt
	c.mu.Unlock()

	if promptOpened && hook != nil {
		hook()
	}
	return snapshot, nil
}

// invoke は生成パイプラインを呼び出します。panic はエラーとして返します。
func (c *Controller) invoke(ctx context.Context, req domain.GenerationRequest) (result *domain.GenerationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "画像生成中に panic が発生しました", "panic", r)
			result, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return c.generator.Generate(context.WithoutCancel(ctx), req)
}

// SaveCredential はキー入力フォームの送信です。キーを保存し、フォームを閉じます。
func (c *Controller) SaveCredential(apiKey string) error {
	key := strings.TrimSpace(apiKey)

	c.mu.Lock()
	defer c.mu.Unlock()

	if key == "" {
		c.state.LastError = MsgEmptyCredential
		return domain.ErrEmptyCredential
	}
	if c.store != nil {
		if err := c.store.Save(key); err != nil {
			return fmt.Errorf("APIキーの保存に失敗しました: %w", err)
		}
	}

	c.credential = key
	c.state.HasCredential = true
	c.state.CredentialPrompt = false
	c.state.LastError = ""
	return nil
}

// Credential は現在のキーを返します。
func (c *Controller) Credential() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credential
}

// OpenCredentialPrompt はキー入力フォームを開きます（歯車アイコン）。
func (c *Controller) OpenCredentialPrompt() {
	c.mu.Lock()
	c.state.CredentialPrompt = true
	hook := c.onCredentialPrompt
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// CloseCredentialPrompt はキー入力フォームを保存せずに閉じます。
func (c *Controller) CloseCredentialPrompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CredentialPrompt = false
}

// Download は直近の生成画像をファイル名付きで返します。
func (c *Controller) Download() (*Download, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.result == nil {
		return nil, ErrNoResult
	}
	return &Download{
		Filename: utils.DownloadFilename(c.now(), c.result.MIMEType),
		MIMEType: c.result.MIMEType,
		Data:     c.result.Data,
	}, nil
}

// mutate は生成中でなければ状態を変更します。
func (c *Controller) mutate(fn func(s *domain.SessionState) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase == domain.PhaseGenerating {
		return ErrBusy
	}
	return fn(&c.state)
}

func (c *Controller) buildRequest() domain.GenerationRequest {
	text := c.state.Prompt
	if strings.TrimSpace(text) == "" && c.state.Mode == domain.ModeEdit {
		text = DefaultEditPrompt
	}
	return domain.GenerationRequest{
		Prompt:         text,
		Mode:           c.state.Mode,
		FunctionID:     c.state.FunctionID,
		PrimaryImage:   c.state.PrimaryImage,
		SecondaryImage: c.state.SecondaryImage,
		Credential:     c.credential,
	}
}

// finish は生成結果を状態に反映します。キー入力フォームを開いた場合は true を返します。
// c.mu を保持した状態で呼び出すこと。
func (c *Controller) finish(ctx context.Context, result *domain.GenerationResult, err error) bool {
	c.state.InFlight = false

	if err == nil {
		if result == nil || !result.Found {
			c.state.Phase = domain.PhaseFailed
			c.state.LastError = MsgNoImage
			return false
		}
		img := result.Image
		if img.MIMEType == "" {
			img.MIMEType = domain.DefaultImageMIMEType
		}
		c.result = &img
		c.state.Phase = domain.PhaseSucceeded
		c.state.ResultImage = img.DataURI()
		c.state.LastError = ""
		return false
	}

	kind := generator.Classify(err)
	slog.WarnContext(ctx, "画像生成に失敗しました", "kind", kind.String(), "error", err)

	switch kind {
	case generator.KindValidation:
		c.state.Phase = domain.PhaseIdle
		c.state.LastError = validationMessage(err)
		return false
	case generator.KindAuthentication:
		c.state.Phase = domain.PhaseFailed
		c.state.LastError = MsgAuthentication
		c.state.CredentialPrompt = true
		return true
	case generator.KindMissingCredential:
		c.state.Phase = domain.PhaseFailed
		c.state.LastError = MsgMissingCredential
		c.state.CredentialPrompt = true
		return true
	default:
		c.state.Phase = domain.PhaseFailed
		c.state.LastError = err.Error()
		if c.state.LastError == "" {
			c.state.LastError = MsgUnknown
		}
		return false
	}
}

// precheck は送信前の同期チェックです。
func precheck(s domain.SessionState) error {
	switch s.Mode {
	case domain.ModeCreate:
		if strings.TrimSpace(s.Prompt) == "" {
			return domain.ErrMissingPrompt
		}
	case domain.ModeEdit:
		if s.PrimaryImage == "" {
			return domain.ErrMissingImage
		}
		if s.FunctionID == domain.FunctionMergePeople && s.SecondaryImage == "" {
			return domain.ErrMissingSecondaryImage
		}
	}
	return nil
}
