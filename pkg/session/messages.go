package session

import (
	"errors"

	"github.com/shouni/mestres-ai/pkg/domain"
)

// ユーザーに表示するメッセージ（ポルトガル語）。
const (
	MsgMissingPrompt         = "Por favor, insira um prompt para criar."
	MsgMissingImage          = "Envie sua foto aqui para editar antes de continuar."
	MsgMissingSecondaryImage = "Para unir pessoas, envie também a segunda foto."
	MsgInvalidImage          = "Não foi possível ler a imagem enviada. Envie outra foto."
	MsgNoImage               = "Nenhuma imagem gerada. Por favor, tente novamente."
	MsgAuthentication        = "Erro de autenticação (404). Verifique sua API Key e tente novamente."
	MsgMissingCredential     = "API Key não encontrada. Por favor, configure sua chave clicando no ícone de engrenagem."
	MsgEmptyCredential       = "A API Key não pode estar vazia."
	MsgUnknown               = "Ocorreu um erro desconhecido"

	// DefaultEditPrompt は編集モードでプロンプトが空のときに送る文です。
	DefaultEditPrompt = "Melhorar esta imagem"
)

// validationMessage は入力不備のエラーを表示用メッセージに変換します。
func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingPrompt):
		return MsgMissingPrompt
	case errors.Is(err, domain.ErrMissingImage):
		return MsgMissingImage
	case errors.Is(err, domain.ErrMissingSecondaryImage):
		return MsgMissingSecondaryImage
	case errors.Is(err, domain.ErrInvalidImage):
		return MsgInvalidImage
	case errors.Is(err, domain.ErrEmptyCredential):
		return MsgEmptyCredential
	default:
		return err.Error()
	}
}
