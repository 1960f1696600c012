package flwdir

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/maseology/flwdir/d8"
	"github.com/maseology/flwdir/errs"
	"github.com/maseology/flwdir/grid"
)

// Snapshot is the exported state of a FlwDirRaster, for gob files and
// external stores. Cached network queries are rebuilt on load.
type Snapshot struct {
	Nrow, Ncol int
	Transform  grid.Affine
	LatLon     bool
	Nodata     float64
	DEM, Z     []float64 // nil for imported directions
	Dirs       []uint8   // internal direction codes
	Raised     int
}

// Snapshot exports the handle state.
func (r *FlwDirRaster) Snapshot() *Snapshot {
	s := Snapshot{
		Nrow:      r.def.Nrow,
		Ncol:      r.def.Ncol,
		Transform: r.def.Transform,
		LatLon:    r.def.LatLon,
		Nodata:    r.nodata,
		DEM:       r.dem,
		Z:         r.zfill,
		Dirs:      make([]uint8, len(r.dirs)),
		Raised:    r.raised,
	}
	for i, d := range r.dirs {
		s.Dirs[i] = uint8(d)
	}
	return &s
}

// FromSnapshot rebuilds a handle from exported state.
func FromSnapshot(s *Snapshot) (*FlwDirRaster, error) {
	def, err := grid.NewDefinition(s.Nrow, s.Ncol, s.Transform, s.LatLon)
	if err != nil {
		return nil, err
	}
	n := def.NumCells()
	if len(s.Dirs) != n {
		return nil, fmt.Errorf("flwdir: snapshot holds %d directions for %d cells: %w", len(s.Dirs), n, errs.ErrInvalidInput)
	}
	if (s.Z == nil) != (s.DEM == nil) || (s.Z != nil && (len(s.Z) != n || len(s.DEM) != n)) {
		return nil, fmt.Errorf("flwdir: snapshot elevations do not match its grid: %w", errs.ErrInvalidInput)
	}
	r := &FlwDirRaster{
		def:    def,
		nodata: s.Nodata,
		dem:    s.DEM,
		zfill:  s.Z,
		dirs:   make([]grid.Dir, n),
		raised: s.Raised,
	}
	r.SetLogger(nil)
	for i, v := range s.Dirs {
		d := grid.Dir(v)
		if !d.IsFlow() && d != grid.NoFlow && d != grid.Nodata {
			return nil, fmt.Errorf("flwdir: snapshot cell %d has direction code %d: %w", i, v, errs.ErrInvalidInput)
		}
		r.dirs[i] = d
	}
	return r, nil
}

// SaveGob writes the handle state to fp.
func (r *FlwDirRaster) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" flwdir.SaveGob %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(r.Snapshot()); err != nil {
		return fmt.Errorf(" flwdir.SaveGob %w", err)
	}
	return f.Close()
}

// LoadGob reads a handle saved with SaveGob.
func LoadGob(fp string) (*FlwDirRaster, error) {
	var s Snapshot
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf(" flwdir.LoadGob %w", err)
	}
	return FromSnapshot(&s)
}

// WriteCheck writes per-cell check rasters to files named prfx + "dirs.bil",
// "upcnt.bil", "order.bil", "basins.bil" and, for elevation based rasters,
// "filled.bil". Directions use convention.
func (r *FlwDirRaster) WriteCheck(prfx, convention string) error {
	c, err := d8.ParseConvention(convention)
	if err != nil {
		return err
	}
	codes, err := d8.Encode(r.dirs, c)
	if err != nil {
		return err
	}
	t, err := r.Network()
	if err != nil {
		return err
	}
	ord, err := r.StreamOrder()
	if err != nil {
		return err
	}

	nodata := func(a []int) []int32 {
		o := make([]int32, len(a))
		for i, v := range a {
			if t.IsValid(i) {
				o[i] = int32(v)
			} else {
				o[i] = -9999
			}
		}
		return o
	}

	if err := grid.WriteBytes(prfx+"dirs.bil", codes); err != nil {
		return err
	}
	if err := grid.WriteInts32(prfx+"upcnt.bil", nodata(t.UpCount())); err != nil { // count of upslope cells, self included
		return err
	}
	if err := grid.WriteInts32(prfx+"order.bil", nodata(ord)); err != nil {
		return err
	}
	if err := grid.WriteInts32(prfx+"basins.bil", nodata(t.Basins())); err != nil {
		return err
	}
	if r.zfill != nil {
		if err := grid.WriteFloats32(prfx+"filled.bil", r.zfill); err != nil {
			return err
		}
	}
	return nil
}
