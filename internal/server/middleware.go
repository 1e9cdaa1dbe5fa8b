package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shouni/mestres-ai/pkg/credential"
	"github.com/shouni/mestres-ai/pkg/session"
)

const (
	RequestIDHeader = "X-Request-ID"
	cookieName      = "mestres_ai_session"
	sessionIDKey    = "sid"
	controllerKey   = "controller"
)

// RequestID はリクエストIDを付与します。クライアントが送ってきた値があればそれを使います。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog は slog でアクセスログを出します。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "request",
			"request_id", c.GetString(RequestIDHeader),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// bindController はクッキーのセッションIDに対応する Controller をコンテキストに載せます。
func (s *Server) bindController() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		id, _ := sess.Get(sessionIDKey).(string)
		if id == "" {
			id = uuid.NewString()
			sess.Set(sessionIDKey, id)
			if err := sess.Save(); err != nil {
				slog.ErrorContext(c.Request.Context(), "セッションを保存できませんでした", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				return
			}
		}
		key, _ := sess.Get(credential.StorageKey).(string)

		ctrl, err := s.registry.Get(id, key)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "コントローラを作成できませんでした", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		c.Set(controllerKey, ctrl)
		c.Next()
	}
}

func controllerFrom(c *gin.Context) *session.Controller {
	return c.MustGet(controllerKey).(*session.Controller)
}
