package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shouni/mestres-ai/internal/config"
	"github.com/shouni/mestres-ai/pkg/adapters"
	"github.com/shouni/mestres-ai/pkg/credential"
	"github.com/shouni/mestres-ai/pkg/generator"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// cfg はコマンド実行前に読み込まれる設定
var cfg config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mestres-ai",
	Short: "Mestres AI - Gemini image create/edit studio",
	Long: `mestres-ai creates new images from a text prompt or edits an uploaded
photo with Gemini, optionally applying a style/function card.

Examples:
  mestres-ai serve
  mestres-ai generate --prompt "a red fox in snow" --function cyberpunk
  mestres-ai generate --mode edit --image me.jpg --function restore-old
  mestres-ai key set AIza...`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg.LogLevel = "debug"
		}
		config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		gin.SetMode(cfg.GinMode)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(functionsCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// newGenerator は設定から生成クライアントを組み立てます。
func newGenerator() (*generator.Generator, error) {
	provider := adapters.NewGenAIProvider(adapters.ProviderOptions{Timeout: cfg.RequestTimeout})
	return generator.NewGenerator(provider, cfg.Model, cfg.APIKey)
}

// newCredentialStore はCLI用のキー保存先を返します。
func newCredentialStore() (*credential.FileStore, error) {
	path := cfg.CredentialFile
	if path == "" {
		p, err := credential.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return credential.NewFileStore(path)
}
