package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maseology/flwdir"
	"github.com/maseology/flwdir/grid"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "flwdir",
	Short: "Flow directions and stream networks from elevation grids",
	Long: `flwdir - depression filling, D8 flow directions and Strahler stream networks.

Grids are read and written as a grid definition file (.gdef) and
little-endian binary arrays (.bil): float32 elevations, single-byte
direction codes.

Examples:
  # Fill depressions
  flwdir fill -g dem.gdef -i dem.bil -o filled.bil

  # PCRaster local drain directions
  flwdir d8 -g dem.gdef -i dem.bil -o ldd.bil --convention ldd

  # Streams of order 3 and above as JSON
  flwdir streams -g dem.gdef -i dem.bil --min-order 3 --format json

  # Full pipeline from a job file
  flwdir run -c job.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func newLogger() (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.Sugar(), nil
}

// demFlags are the inputs and options shared by the elevation commands.
type demFlags struct {
	gdef, input, output string

	nodata   float64
	latlon   bool
	outlets  string
	maxDepth float64
	idxs     []int
}

func (f *demFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.gdef, "gdef", "g", "", "grid definition file")
	fs.StringVarP(&f.input, "input", "i", "", "elevation grid (.bil, float32)")
	fs.StringVarP(&f.output, "output", "o", "", "output file")
	fs.Float64Var(&f.nodata, "nodata", -9999., "elevation nodata value")
	fs.BoolVar(&f.latlon, "latlon", false, "geographic coordinates (also set by the grid definition)")
	fs.StringVar(&f.outlets, "outlets", "edge", "outlet policy: edge or min")
	fs.Float64Var(&f.maxDepth, "max-depth", 0., "largest fill depth, 0 for unbounded")
	fs.IntSliceVar(&f.idxs, "idxs", nil, "additional outlet cell ids")
	_ = cmd.MarkFlagRequired("gdef")
	_ = cmd.MarkFlagRequired("input")
}

func (f *demFlags) options(log *zap.SugaredLogger) flwdir.Options {
	return flwdir.Options{
		Nodata:   &f.nodata,
		LatLon:   f.latlon,
		Outlets:  f.outlets,
		Idxs:     f.idxs,
		MaxDepth: f.maxDepth,
		Logger:   log,
	}
}

// readDEM loads an elevation grid and completes o with its transform.
func readDEM(gdefFP, demFP string, o *flwdir.Options) (*grid.Definition, []float64, error) {
	gd, err := grid.ReadGDEF(gdefFP)
	if err != nil {
		return nil, nil, err
	}
	z, err := grid.ReadFloats32(demFP, gd.NumCells())
	if err != nil {
		return nil, nil, err
	}
	o.Transform = gd.Transform
	o.LatLon = o.LatLon || gd.LatLon
	return gd, z, nil
}

// build runs depression filling and flow direction assignment on the inputs
// named by f.
func (f *demFlags) build() (*flwdir.FlwDirRaster, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}
	defer log.Sync()

	o := f.options(log)
	gd, z, err := readDEM(f.gdef, f.input, &o)
	if err != nil {
		return nil, err
	}
	return flwdir.FromDEM(z, gd.Nrow, gd.Ncol, o)
}
