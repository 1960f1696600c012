package flwdir

import (
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"

	"github.com/maseology/flwdir/d8"
	"github.com/maseology/flwdir/errs"
	"github.com/maseology/flwdir/grid"
	"github.com/maseology/flwdir/strahler"
	"github.com/maseology/flwdir/tem"
)

// FlwDirRaster holds a flow direction grid with its definition and, when built
// from elevations, the input and filled elevations. All per-cell slices are
// row-major with Nrow*Ncol entries.
//
// The handle is not safe for concurrent first use of the cached queries
// (Network, StreamOrder and those depending on them).
type FlwDirRaster struct {
	def    *grid.Definition
	nodata float64
	dem    []float64 // input elevations, nil for imported directions
	zfill  []float64 // filled elevations, nil for imported directions
	dirs   []grid.Dir
	raised int

	net *tem.TEM
	ord []int
	log *zap.SugaredLogger
}

// Definition returns the grid definition.
func (r *FlwDirRaster) Definition() *grid.Definition { return r.def }

// Nodata returns the elevation nodata sentinel.
func (r *FlwDirRaster) Nodata() float64 { return r.nodata }

// Filled returns a copy of the depression-filled elevations; nil when the
// raster was imported from directions.
func (r *FlwDirRaster) Filled() []float64 {
	if r.zfill == nil {
		return nil
	}
	return append([]float64(nil), r.zfill...)
}

// Dirs returns a copy of the internal flow directions.
func (r *FlwDirRaster) Dirs() []grid.Dir {
	return append([]grid.Dir(nil), r.dirs...)
}

// Encode returns the flow directions in the named convention.
func (r *FlwDirRaster) Encode(convention string) ([]uint8, error) {
	c, err := d8.ParseConvention(convention)
	if err != nil {
		return nil, err
	}
	return d8.Encode(r.dirs, c)
}

// Pits returns the valid cells without a downstream neighbour, ascending.
func (r *FlwDirRaster) Pits() []int {
	var o []int
	for cid, d := range r.dirs {
		if d == grid.NoFlow {
			o = append(o, cid)
		}
	}
	return o
}

// SetLogger replaces the handle's logger; nil logs nothing.
func (r *FlwDirRaster) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r.log = log
}

// Network returns the flow network, building it on first use.
func (r *FlwDirRaster) Network() (*tem.TEM, error) {
	if r.net != nil {
		return r.net, nil
	}
	tt := time.Now()
	t, err := tem.New(r.def, r.dirs)
	if err != nil {
		return nil, err
	}
	r.net = t
	r.log.Infow("flow network built", "cells", t.NumValid(), "pits", len(t.Pits()), "elapsed", time.Since(tt))
	return t, nil
}

// StreamOrder returns the Strahler order of every cell, 0 for nodata.
func (r *FlwDirRaster) StreamOrder() ([]int, error) {
	if r.ord == nil {
		t, err := r.Network()
		if err != nil {
			return nil, err
		}
		r.ord = strahler.Order(t)
	}
	return append([]int(nil), r.ord...), nil
}

// Streams returns the stream segments of order minOrder and above. The
// sequence is computed lazily and may be ranged over repeatedly.
func (r *FlwDirRaster) Streams(minOrder int) (iter.Seq[strahler.Segment], error) {
	if minOrder < 1 {
		return nil, fmt.Errorf("flwdir: minimum stream order must be at least 1, got %d: %w", minOrder, errs.ErrInvalidInput)
	}
	if _, err := r.StreamOrder(); err != nil {
		return nil, err
	}
	return strahler.Segments(r.net, r.def, r.ord, minOrder), nil
}

// UpstreamArea returns the contributing area of every cell, self included, in
// the squared units of the transform (m² for geographic grids).
func (r *FlwDirRaster) UpstreamArea() ([]float64, error) {
	t, err := r.Network()
	if err != nil {
		return nil, err
	}
	return t.UpstreamArea(r.def), nil
}

// Basins labels every cell with the 1-based index of the pit it drains to;
// 0 for nodata.
func (r *FlwDirRaster) Basins() ([]int, error) {
	t, err := r.Network()
	if err != nil {
		return nil, err
	}
	return t.Basins(), nil
}

// Catchment returns cid and every cell draining to it, cid last.
func (r *FlwDirRaster) Catchment(cid int) ([]int, error) {
	t, err := r.Network()
	if err != nil {
		return nil, err
	}
	if !r.def.Contains(cid) || !t.IsValid(cid) {
		return nil, fmt.Errorf("flwdir: cell %d is outside the grid or nodata: %w", cid, errs.ErrInvalidInput)
	}
	return t.Contributing(cid), nil
}
