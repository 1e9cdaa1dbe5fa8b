package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/mestres-ai/pkg/domain"
	"github.com/shouni/mestres-ai/pkg/imgutil"
	"github.com/shouni/mestres-ai/pkg/session"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate or edit one image",
	Long: `Run a single create/edit round and write the resulting image to disk.

The API key is taken from --api-key, then the saved key (see "key set"),
then GEMINI_API_KEY.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("mode", string(domain.ModeCreate), "create or edit")
	generateCmd.Flags().StringP("prompt", "p", "", "Prompt text")
	generateCmd.Flags().StringP("function", "f", "", "Function card id (see \"functions\")")
	generateCmd.Flags().String("image", "", "Photo to edit (edit mode)")
	generateCmd.Flags().String("image2", "", "Second photo for merge-people")
	generateCmd.Flags().String("api-key", "", "API key for this run only")
	generateCmd.Flags().StringP("out", "o", "", "Output file (default: mestres-ai-<ms>.png)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	prompt, _ := cmd.Flags().GetString("prompt")
	function, _ := cmd.Flags().GetString("function")
	image, _ := cmd.Flags().GetString("image")
	image2, _ := cmd.Flags().GetString("image2")
	apiKey, _ := cmd.Flags().GetString("api-key")
	out, _ := cmd.Flags().GetString("out")

	gen, err := newGenerator()
	if err != nil {
		return err
	}
	store, err := newCredentialStore()
	if err != nil {
		return err
	}

	ctrl, err := session.NewController(gen,
		session.WithCredentialStore(store),
		session.WithCredential(apiKey),
		session.WithCredentialPromptHook(func() {
			fmt.Fprintln(cmd.ErrOrStderr(), "Set a key with: mestres-ai key set <api-key>")
		}),
	)
	if err != nil {
		return err
	}

	if err := ctrl.SetMode(domain.Mode(mode)); err != nil {
		return err
	}
	if err := ctrl.SetPrompt(prompt); err != nil {
		return err
	}
	if function != "" {
		if err := ctrl.SelectFunction(function); err != nil {
			return fmt.Errorf("%w: %s", err, function)
		}
	}

	upload := imgutil.UploadOptions{
		MaxBytes:      cfg.UploadMaxBytes,
		CompressAbove: cfg.UploadCompressBytes,
		Quality:       imgutil.DefaultQuality,
	}
	if image != "" {
		uri, err := readImage(image, upload)
		if err != nil {
			return err
		}
		if err := ctrl.SetPrimaryImage(uri); err != nil {
			return err
		}
	}
	if image2 != "" {
		uri, err := readImage(image2, upload)
		if err != nil {
			return err
		}
		if err := ctrl.SetSecondaryImage(uri); err != nil {
			return err
		}
	}

	state, err := ctrl.Generate(cmd.Context())
	if err != nil {
		return err
	}
	if state.Phase != domain.PhaseSucceeded {
		return errors.New(state.LastError)
	}

	d, err := ctrl.Download()
	if err != nil {
		return err
	}
	if out == "" {
		out = d.Filename
	}
	if err := os.WriteFile(out, d.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	slog.Info("画像を保存しました", "path", out, "bytes", len(d.Data))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func readImage(path string, opts imgutil.UploadOptions) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	uri, err := imgutil.PrepareUpload(data, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return uri, nil
}
