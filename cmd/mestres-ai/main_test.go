package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "*****6789", maskKey("AIza56789"))
	assert.Equal(t, "", maskKey(""))
}

func TestKeyCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	t.Setenv("MESTRES_CREDENTIAL_FILE", path)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"key", "set", "AIzaSECRET1234"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), path)

	out.Reset()
	rootCmd.SetArgs([]string{"key", "show"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "**********1234")
	assert.NotContains(t, out.String(), "SECRET")
}

func TestFunctionsCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"functions", "--mode", "edit"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "merge-people")
	assert.NotContains(t, out.String(), "cyberpunk")
}
