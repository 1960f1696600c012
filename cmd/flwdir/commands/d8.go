package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maseology/flwdir/grid"
)

var (
	d8Flags      demFlags
	d8Convention string
)

var d8Cmd = &cobra.Command{
	Use:   "d8",
	Short: "Assign D8 flow directions",
	Long: `Fill depressions and assign each cell the direction of its steepest
downslope neighbour. Directions are written as one byte per cell in the
chosen convention:

  d8   N=64 NE=128 E=1 SE=2 S=4 SW=8 W=16 NW=32, pit 0, nodata 247
  ldd  numeric keypad (N=8 ... SW=1), pit 5, nodata 255`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if d8Flags.output == "" {
			return fmt.Errorf("--output is required")
		}
		r, err := d8Flags.build()
		if err != nil {
			return err
		}
		codes, err := r.Encode(d8Convention)
		if err != nil {
			return err
		}
		if err := grid.WriteBytes(d8Flags.output, codes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s directions written to %s (%d pits)\n", d8Convention, d8Flags.output, len(r.Pits()))
		return nil
	},
}

func init() {
	d8Flags.register(d8Cmd)
	d8Cmd.Flags().StringVar(&d8Convention, "convention", "d8", "direction encoding: d8 or ldd")
	rootCmd.AddCommand(d8Cmd)
}
