package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shouni/mestres-ai/pkg/domain"
	"github.com/spf13/cobra"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the function cards",
	RunE:  runFunctions,
}

func init() {
	functionsCmd.Flags().String("mode", "", "Only list cards of this mode (create or edit)")
}

func runFunctions(cmd *cobra.Command, args []string) error {
	filter, _ := cmd.Flags().GetString("mode")

	modes := []domain.Mode{domain.ModeCreate, domain.ModeEdit}
	if filter != "" {
		m := domain.Mode(filter)
		if !m.Valid() {
			return domain.ErrInvalidMode
		}
		modes = []domain.Mode{m}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tID\tLABEL\tDESCRIPTION")
	for _, m := range modes {
		for _, card := range domain.FunctionsFor(m) {
			fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\n", m, card.ID, card.Icon, card.Label, card.Description)
		}
	}
	return w.Flush()
}
