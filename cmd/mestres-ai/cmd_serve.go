package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/mestres-ai/internal/server"
	"github.com/shouni/mestres-ai/pkg/imgutil"
	"github.com/shouni/mestres-ai/pkg/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP front end",
	Long:  `Serve the JSON API used by the browser page. Each browser gets its own session; its API key is kept in an encrypted cookie.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default: MESTRES_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Addr
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Factory: func(key string) (*session.Controller, error) {
			return session.NewController(gen, session.WithCredential(key))
		},
		SessionSecret: cfg.SessionSecret,
		Upload: imgutil.UploadOptions{
			MaxBytes:      cfg.UploadMaxBytes,
			CompressAbove: cfg.UploadCompressBytes,
			Quality:       imgutil.DefaultQuality,
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, addr)
}
