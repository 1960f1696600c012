package commands

import (
	"github.com/spf13/cobra"
)

var (
	streamsFlags    demFlags
	streamsMinOrder int
	streamsFormat   string
)

var streamsCmd = &cobra.Command{
	Use:   "streams",
	Short: "Extract Strahler ordered stream segments",
	Long: `Build the flow network of an elevation grid and write the stream segments
of at least --min-order as cell id lists with cell-centre coordinates.
Output goes to stdout unless --output is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := streamsFlags.build()
		if err != nil {
			return err
		}
		seq, err := r.Streams(streamsMinOrder)
		if err != nil {
			return err
		}
		return output(cmd.OutOrStdout(), streamsFlags.output, streamsFormat, records(seq))
	},
}

func init() {
	streamsFlags.register(streamsCmd)
	streamsCmd.Flags().IntVar(&streamsMinOrder, "min-order", 1, "smallest Strahler order to extract")
	streamsCmd.Flags().StringVar(&streamsFormat, "format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(streamsCmd)
}
