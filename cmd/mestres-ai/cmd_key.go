package main

import (
	"fmt"
	"strings"

	"github.com/shouni/mestres-ai/pkg/domain"
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the saved API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Save the API key used by generate",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeySet,
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved API key (masked)",
	RunE:  runKeyShow,
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	if key == "" {
		return domain.ErrEmptyCredential
	}
	store, err := newCredentialStore()
	if err != nil {
		return err
	}
	if err := store.Save(key); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", store.Path())
	return nil
}

func runKeyShow(cmd *cobra.Command, args []string) error {
	store, err := newCredentialStore()
	if err != nil {
		return err
	}
	key, err := store.Load()
	if err != nil {
		return err
	}
	if key == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "no API key saved (%s)\n", store.Path())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", maskKey(key), store.Path())
	return nil
}

// maskKey は末尾4文字だけを残します。
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
