package commands

import (
	"github.com/spf13/cobra"

	"github.com/ledgerport-dev/ledgerport/internal/props"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported date and currency formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("date formats:")
			for _, name := range props.DateFormatNames() {
				cmd.Printf("  %s\n", name)
			}
			cmd.Println("currency formats:")
			for _, name := range props.CurrencyFormatNames() {
				cmd.Printf("  %s\n", name)
			}
		},
	}
}
