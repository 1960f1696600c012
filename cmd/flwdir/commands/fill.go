package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maseology/flwdir/grid"
)

var fillFlags demFlags

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the depressions of an elevation grid",
	Long: `Fill local depressions by priority-flood from the grid outlets and write
the filled elevations as float32.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if fillFlags.output == "" {
			return fmt.Errorf("--output is required")
		}
		r, err := fillFlags.build()
		if err != nil {
			return err
		}
		if err := grid.WriteFloats32(fillFlags.output, r.Filled()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "filled elevations written to %s\n", fillFlags.output)
		return nil
	},
}

func init() {
	fillFlags.register(fillCmd)
	rootCmd.AddCommand(fillCmd)
}
