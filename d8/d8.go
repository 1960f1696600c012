// Package d8 assigns single steepest-descent flow directions to a
// depression-filled grid and maps them to and from external encodings.
package d8

import (
	"fmt"

	"github.com/maseology/flwdir/errs"
	"github.com/maseology/flwdir/fill"
	"github.com/maseology/flwdir/grid"
)

// Assign returns one direction per cell of e, using the filled elevations of f.
//
// The steepest non-negative slope wins, ties going to the first neighbour in
// scan order N, NE, E, SE, S, SW, W, NW. On flats (best slope exactly zero) the
// cell drains to its flood parent, which is always among the tied candidates;
// an outlet on a flat keeps NoFlow. Pits, requested outlets (f.Outlet) and
// cells without a neighbour at or below their own elevation get NoFlow,
// nodata cells get Nodata.
func Assign(e *grid.Elevation, f *fill.Result) ([]grid.Dir, error) {
	if e == nil || f == nil {
		return nil, fmt.Errorf("d8: nil input: %w", errs.ErrInvalidInput)
	}
	def := e.Def
	n := def.NumCells()
	if len(f.Z) != n || len(f.Pit) != n || len(f.Parent) != n {
		return nil, fmt.Errorf("d8: filled grid does not match elevation grid: %w", errs.ErrInvalidInput)
	}

	dirs := make([]grid.Dir, n)
	for cid := range n {
		switch {
		case !e.IsValid(cid):
			dirs[cid] = grid.Nodata
		case f.Pit[cid], f.Outlet != nil && f.Outlet[cid]:
			dirs[cid] = grid.NoFlow
		default:
			dirs[cid] = steepest(e, f, cid)
		}
	}
	return dirs, nil
}

func steepest(e *grid.Elevation, f *fill.Result, cid int) grid.Dir {
	def := e.Def
	z0 := f.Z[cid]
	best, smax := grid.NoFlow, -1.
	for d := grid.N; d <= grid.NW; d++ {
		nid, ok := def.Neighbour(cid, d)
		if !ok || !e.IsValid(nid) {
			continue
		}
		s := (z0 - f.Z[nid]) / def.Distance(cid, d)
		if s >= 0. && s > smax {
			best, smax = d, s
		}
	}
	if smax != 0. {
		return best // NoFlow when nothing is at or below z0
	}

	// flat: follow the flood front
	p := f.Parent[cid]
	if p < 0 {
		return grid.NoFlow
	}
	for d := grid.N; d <= grid.NW; d++ {
		if nid, ok := def.Neighbour(cid, d); ok && nid == p {
			return d
		}
	}
	panic(fmt.Sprintf("d8: flood parent %d of cell %d is not a neighbour", p, cid))
}
