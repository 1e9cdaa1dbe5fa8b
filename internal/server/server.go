package server

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/shouni/mestres-ai/pkg/imgutil"
)

const (
	cookieMaxAge    = 365 * 24 * 60 * 60
	idleTimeout     = 2 * time.Hour
	pruneInterval   = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Options は HTTP フロントエンドの設定です。
type Options struct {
	Factory       ControllerFactory
	SessionSecret string
	Upload        imgutil.UploadOptions
}

type Server struct {
	engine   *gin.Engine
	registry *Registry
	upload   imgutil.UploadOptions
}

// New は gin エンジンを組み立てます。
func New(opts Options) (*Server, error) {
	if opts.Factory == nil {
		return nil, fmt.Errorf("controller factory is required")
	}
	if opts.SessionSecret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	s := &Server{
		registry: NewRegistry(opts.Factory),
		upload:   opts.Upload,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(AccessLog())

	// 署名用と暗号化用のキーをシークレットから導出する
	authKey := sha256.Sum256([]byte("auth:" + opts.SessionSecret))
	encKey := sha256.Sum256([]byte("enc:" + opts.SessionSecret))
	store := cookie.NewStore(authKey[:], encKey[:])
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	api.GET("/functions", s.listFunctions)

	browser := api.Group("")
	browser.Use(sessions.Sessions(cookieName, store))
	browser.Use(s.bindController())
	{
		browser.GET("/session", s.getSession)
		browser.PUT("/session/mode", s.setMode)
		browser.PUT("/session/prompt", s.setPrompt)
		browser.PUT("/session/function", s.selectFunction)
		browser.POST("/session/images/:slot", s.uploadImage)
		browser.DELETE("/session/images/:slot", s.clearImage)
		browser.POST("/session/generate", s.generate)
		browser.GET("/session/download", s.download)
		browser.PUT("/credential", s.saveCredential)
		browser.POST("/credential/prompt", s.openCredentialPrompt)
		browser.DELETE("/credential/prompt", s.closeCredentialPrompt)
	}

	s.engine = engine
	return s, nil
}

// Handler は http.Handler としてのエンジンを返します。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Registry はセッションの保持先です。
func (s *Server) Registry() *Registry {
	return s.registry
}

// Run は ctx がキャンセルされるまでサーバーを動かします。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.pruneLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTPサーバーを起動します", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("HTTPサーバーを停止します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.registry.Prune(idleTimeout); n > 0 {
				slog.Debug("使われていないセッションを破棄しました", "count", n)
			}
		}
	}
}
