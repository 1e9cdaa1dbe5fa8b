package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage_DataURI(t *testing.T) {
	t.Run("MIMEタイプ付きでエンコードするのだ", func(t *testing.T) {
		img := Image{Data: []byte("abc"), MIMEType: "image/jpeg"}
		assert.Equal(t, "data:image/jpeg;base64,YWJj", img.DataURI())
	})

	t.Run("MIMEタイプが空ならPNG扱いなのだ", func(t *testing.T) {
		img := Image{Data: []byte("abc")}
		assert.Equal(t, "data:image/png;base64,YWJj", img.DataURI())
	})
}

func TestFunctionsFor(t *testing.T) {
	assert.Len(t, FunctionsFor(ModeCreate), 4)
	assert.Len(t, FunctionsFor(ModeEdit), 5)
	assert.Nil(t, FunctionsFor(Mode("video")))

	card, ok := LookupFunction(ModeEdit, FunctionMergePeople)
	assert.True(t, ok)
	assert.Equal(t, "Unir Pessoas", card.Label)

	_, ok = LookupFunction(ModeCreate, FunctionMergePeople)
	assert.False(t, ok, "merge-people is an edit-only card")
}

func TestMode_Valid(t *testing.T) {
	assert.True(t, ModeCreate.Valid())
	assert.True(t, ModeEdit.Valid())
	assert.False(t, Mode("").Valid())
}
