package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maseology/flwdir"
	"github.com/maseology/flwdir/cmd/flwdir/internal/config"
	"github.com/maseology/flwdir/store"
)

var (
	runConfig     string
	runProgress   bool
	runClearCache bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline from a job file",
	Long: `Fill, assign directions, build the flow network and extract streams as
configured by a YAML job file. Outputs are written under the job's "out"
prefix:

  <out>dirs.bil     directions in the job's convention
  <out>filled.bil   filled elevations
  <out>upcnt.bil    contributing cell counts
  <out>order.bil    Strahler order
  <out>basins.bil   pit basin labels
  <out>streams.*    stream segments (yaml or json)
  <out>flwdir.gob   the flow direction raster

With cache_dir set, filled rasters are cached by a digest of the elevation
grid and options, and reused on later runs. --clear-cache empties the cache
before the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := config.Load(runConfig)
		if err != nil {
			return err
		}
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()
		if runClearCache {
			if j.CacheDir == "" {
				return errors.New("--clear-cache given but the job sets no cache_dir")
			}
			if _, err := clearCache(cmd.Context(), j.CacheDir, log); err != nil {
				return err
			}
		}
		return runJob(cmd.Context(), cmd.OutOrStdout(), j, log, runProgress)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runConfig, "config", "c", "flwdir.yaml", "job file")
	runCmd.Flags().BoolVar(&runProgress, "progress", true, "show a progress bar")
	runCmd.Flags().BoolVar(&runClearCache, "clear-cache", false, "delete every cached raster before running")
	rootCmd.AddCommand(runCmd)
}

var runStages = []string{"load", "fill", "network", "streams", "write"}

func runJob(ctx context.Context, w io.Writer, j *config.Job, log *zap.SugaredLogger, progress bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	step, stop := func() {}, func() {}
	if progress {
		uiprogress.Start()
		stopped := false
		stop = func() {
			if !stopped {
				stopped = true
				uiprogress.Stop()
			}
		}
		defer stop()
		bar := uiprogress.AddBar(len(runStages)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("%-8s", runStages[min(b.Current(), len(runStages)-1)])
		})
		step = func() { bar.Incr() }
	}

	// load
	o := flwdir.Options{
		Nodata:   &j.Nodata,
		LatLon:   j.LatLon,
		Outlets:  j.Outlets,
		Idxs:     j.Idxs,
		MaxDepth: j.MaxDepth,
		Logger:   log,
	}
	gd, z, err := readDEM(j.GDEF, j.DEM, &o)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(j.Out+"x"), 0755); err != nil {
		return err
	}
	xres, _ := gd.Transform.Res()
	log.Infow("grid loaded", "dem", j.DEM, "nrow", gd.Nrow, "ncol", gd.Ncol, "cellsize", xres, "latlon", o.LatLon)
	step()

	// fill
	r, err := func() (*flwdir.FlwDirRaster, error) {
		if j.CacheDir == "" {
			return flwdir.FromDEM(z, gd.Nrow, gd.Ncol, o)
		}
		st, err := store.Open(store.Options{Dir: j.CacheDir, Logger: log})
		if err != nil {
			return nil, err
		}
		defer st.Close()

		key := store.Key(z, gd.Nrow, gd.Ncol, o)
		r, err := st.Get(ctx, key)
		switch {
		case err == nil:
			log.Infow("cache hit", "key", key)
			r.SetLogger(log)
			return r, nil
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
		if r, err = flwdir.FromDEM(z, gd.Nrow, gd.Ncol, o); err != nil {
			return nil, err
		}
		return r, st.Put(ctx, key, r)
	}()
	if err != nil {
		return err
	}
	step()

	// network
	if _, err := r.StreamOrder(); err != nil {
		return err
	}
	step()

	// streams
	seq, err := r.Streams(j.MinOrder)
	if err != nil {
		return err
	}
	strms := records(seq)
	if err := output(nil, j.Out+"streams."+j.Format, j.Format, strms); err != nil {
		return err
	}
	step()

	// write
	if err := r.WriteCheck(j.Out, j.Convention); err != nil {
		return err
	}
	if err := r.SaveGob(j.Out + "flwdir.gob"); err != nil {
		return err
	}
	step()

	s, err := r.Summary()
	if err != nil {
		return err
	}
	stop()
	fmt.Fprintln(w, renderSummary(s, len(strms)))
	return nil
}

// clearCache deletes every raster cached under dir and returns their number.
func clearCache(ctx context.Context, dir string, log *zap.SugaredLogger) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(store.Options{Dir: dir, Logger: log})
	if err != nil {
		return 0, err
	}
	defer st.Close()

	var keys []string
	for k, err := range st.Keys(ctx) {
		if err != nil {
			return 0, err
		}
		keys = append(keys, k)
	}
	for _, k := range keys {
		if err := st.Delete(ctx, k); err != nil {
			return 0, err
		}
	}
	log.Infow("cache cleared", "dir", dir, "entries", len(keys))
	return len(keys), nil
}

func renderSummary(s flwdir.Summary, nstrm int) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#6e7681")).
		Padding(0, 1)

	rows := [][2]string{
		{"grid", fmt.Sprintf("%d x %d", s.Nrow, s.Ncol)},
		{"valid cells", fmt.Sprint(s.Valid)},
		{"pits", fmt.Sprint(s.Pits)},
		{"raised", fmt.Sprint(s.Raised)},
		{"fill depth", fmt.Sprintf("mean %.3f  sd %.3f  max %.3f", s.MeanDepth, s.StdDepth, s.MaxDepth)},
		{"max order", fmt.Sprint(s.MaxOrder)},
		{"max uparea", fmt.Sprintf("%.6g", s.MaxUparea)},
		{"main stem", fmt.Sprintf("%d cells (longest path %d)", s.MainStem, s.Longest)},
		{"segments", fmt.Sprint(nstrm)},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = label.Render(fmt.Sprintf("%-11s", r[0])) + " " + r[1]
	}
	return box.Render(strings.Join(lines, "\n"))
}
