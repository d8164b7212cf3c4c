package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/cardforge"
)

func fingerprintCmd() *cobra.Command {
	var (
		components string
		avoid      string
		idea       string
		cardFile   string
	)
	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the content fingerprint of a card",
		Long: `Computes the 8-character content fingerprint used as the generation cache key.

Either pass the three text fields directly or a JSON card file:

  cardforge fingerprint --components "1. a" --avoid "" --idea "x"
  cardforge fingerprint --card card.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cardFile == "" {
				fmt.Fprintln(cmd.OutOrStdout(), cardforge.Fingerprint(components, avoid, idea))
				return nil
			}
			if cmd.Flags().Changed("components") || cmd.Flags().Changed("avoid") || cmd.Flags().Changed("idea") {
				return fmt.Errorf("--card cannot be combined with text flags")
			}
			data, err := os.ReadFile(cardFile)
			if err != nil {
				return fmt.Errorf("read card: %w", err)
			}
			var card cardforge.Card
			if err := json.Unmarshal(data, &card); err != nil {
				return fmt.Errorf("parse card %s: %w", cardFile, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), card.Fingerprint())
			return nil
		},
	}
	cmd.Flags().StringVar(&components, "components", "", "components text")
	cmd.Flags().StringVar(&avoid, "avoid", "", "words to avoid")
	cmd.Flags().StringVar(&idea, "idea", "", "card idea")
	cmd.Flags().StringVar(&cardFile, "card", "", "JSON card file")
	return cmd
}
