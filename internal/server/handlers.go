package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shouni/mestres-ai/pkg/credential"
	"github.com/shouni/mestres-ai/pkg/domain"
	"github.com/shouni/mestres-ai/pkg/imgutil"
	"github.com/shouni/mestres-ai/pkg/session"
)

const (
	slotPrimary   = "primary"
	slotSecondary = "secondary"
)

type modeBody struct {
	Mode domain.Mode `json:"mode" binding:"required"`
}

type promptBody struct {
	Prompt string `json:"prompt"`
}

type functionBody struct {
	FunctionID string `json:"function_id"`
}

type credentialBody struct {
	APIKey string `json:"api_key"`
}

func (s *Server) listFunctions(c *gin.Context) {
	mode := domain.Mode(c.DefaultQuery("mode", string(domain.ModeCreate)))
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidMode.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode, "functions": domain.FunctionsFor(mode)})
}

func (s *Server) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, controllerFrom(c).Snapshot())
}

func (s *Server) setMode(c *gin.Context) {
	var body modeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := controllerFrom(c)
	s.respond(c, ctrl, ctrl.SetMode(body.Mode))
}

func (s *Server) setPrompt(c *gin.Context) {
	var body promptBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := controllerFrom(c)
	s.respond(c, ctrl, ctrl.SetPrompt(body.Prompt))
}

func (s *Server) selectFunction(c *gin.Context) {
	var body functionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := controllerFrom(c)
	s.respond(c, ctrl, ctrl.SelectFunction(body.FunctionID))
}

func (s *Server) uploadImage(c *gin.Context) {
	ctrl := controllerFrom(c)
	slot := c.Param("slot")
	if slot != slotPrimary && slot != slotSecondary {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown image slot %q", slot)})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	r := io.Reader(f)
	if s.upload.MaxBytes > 0 {
		r = io.LimitReader(f, s.upload.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataURI, err := imgutil.PrepareUpload(data, s.upload)
	switch {
	case errors.Is(err, imgutil.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": session.MsgInvalidImage})
		return
	}

	if slot == slotPrimary {
		err = ctrl.SetPrimaryImage(dataURI)
	} else {
		err = ctrl.SetSecondaryImage(dataURI)
	}
	s.respond(c, ctrl, err)
}

func (s *Server) clearImage(c *gin.Context) {
	ctrl := controllerFrom(c)
	var err error
	switch c.Param("slot") {
	case slotPrimary:
		err = ctrl.ClearPrimaryImage()
	case slotSecondary:
		err = ctrl.ClearSecondaryImage()
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown image slot"})
		return
	}
	s.respond(c, ctrl, err)
}

// generate は生成が終わるまでブロックします。失敗は状態として 200 で返します。
func (s *Server) generate(c *gin.Context) {
	ctrl := controllerFrom(c)
	state, err := ctrl.Generate(c.Request.Context())
	if errors.Is(err, session.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "session": state})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) download(c *gin.Context) {
	d, err := controllerFrom(c).Download()
	if errors.Is(err, session.ErrNoResult) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, d.Filename))
	c.Data(http.StatusOK, d.MIMEType, d.Data)
}

func (s *Server) saveCredential(c *gin.Context) {
	var body credentialBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := controllerFrom(c)
	if err := ctrl.SaveCredential(body.APIKey); err != nil {
		s.respond(c, ctrl, err)
		return
	}

	// ブラウザのクッキーにも残して、サーバー再起動後も使えるようにする
	sess := sessions.Default(c)
	sess.Set(credential.StorageKey, ctrl.Credential())
	if err := sess.Save(); err != nil {
		slog.ErrorContext(c.Request.Context(), "APIキーをクッキーに保存できませんでした", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist api key"})
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (s *Server) openCredentialPrompt(c *gin.Context) {
	ctrl := controllerFrom(c)
	ctrl.OpenCredentialPrompt()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (s *Server) closeCredentialPrompt(c *gin.Context) {
	ctrl := controllerFrom(c)
	ctrl.CloseCredentialPrompt()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// respond はアクションの結果をステータスコードに変換します。
func (s *Server) respond(c *gin.Context, ctrl *session.Controller, err error) {
	state := ctrl.Snapshot()
	switch {
	case err == nil:
		c.JSON(http.StatusOK, state)
	case errors.Is(err, session.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "session": state})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "session": state})
	default:
		slog.ErrorContext(c.Request.Context(), "操作に失敗しました", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "session": state})
	}
}
