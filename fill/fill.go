// Package fill removes depressions from an elevation grid by priority-flood
// (Wang and Liu, 2006).
//
// The flood starts from the outlet cells and visits every reachable valid cell
// in order of ascending filled elevation. A visited cell is raised to the
// filled elevation of the cell that reached it when it lies lower, so each
// cell keeps a non-ascending 8-connected path back to an outlet.
package fill

import (
	"fmt"
	"math"

	"github.com/maseology/flwdir/errs"
	"github.com/maseology/flwdir/grid"
)

// Outlets selects the cells the flood starts from.
type Outlets string

const (
	Edge Outlets = "edge" // every valid cell on the raster border
	Min  Outlets = "min"  // the lowest valid border cell only
)

// ParseOutlets returns the policy named s; empty means Edge.
func ParseOutlets(s string) (Outlets, error) {
	switch Outlets(s) {
	case "", Edge:
		return Edge, nil
	case Min:
		return Min, nil
	}
	return "", fmt.Errorf("fill: unknown outlet policy %q: %w", s, errs.ErrInvalidInput)
}

// Options controls the flood.
type Options struct {
	Outlets  Outlets
	Idxs     []int   // additional outlet cells
	MaxDepth float64 // largest allowed raise [elevation units]; 0 is unbounded
}

// Result is the depression-filled grid.
type Result struct {
	Z      []float64 // filled elevations, nodata cells unchanged
	Pit    []bool    // unreached cells and cells exceeding MaxDepth
	Parent []int     // cell the flood reached each cell from, -1 for outlets, pits and nodata
	Seeds  []int     // outlet cells the flood started from, in push order
	Outlet []bool    // requested outlet cells (Options.Idxs), terminal in the flow network
	Raised int       // number of cells raised
}

// Fill floods e from its outlets. The input is not modified.
func Fill(e *grid.Elevation, o Options) (*Result, error) {
	maxd, err := o.validate(e)
	if err != nil {
		return nil, err
	}

	def := e.Def
	n := def.NumCells()
	r := &Result{
		Z:      make([]float64, n),
		Pit:    make([]bool, n),
		Parent: make([]int, n),
		Outlet: make([]bool, n),
	}
	copy(r.Z, e.Z)
	for i := range r.Parent {
		r.Parent[i] = -1
	}

	visited := make([]bool, n)
	q := newQueue(2 * (def.Nrow + def.Ncol))
	seed := func(cid int) {
		if visited[cid] {
			return
		}
		visited[cid] = true
		r.Seeds = append(r.Seeds, cid)
		q.push(e.Z[cid], cid)
	}

	switch o.Outlets {
	case "", Edge:
		for cid := range n {
			if def.IsEdge(cid) && e.IsValid(cid) {
				seed(cid)
			}
		}
	case Min:
		if c0 := lowestEdge(e); c0 >= 0 {
			seed(c0)
		}
	}
	for _, cid := range o.Idxs {
		r.Outlet[cid] = true
		seed(cid)
	}
	if q.len() == 0 {
		return nil, fmt.Errorf("fill: no valid border cell or outlet cell to start from: %w", errs.ErrInvalidInput)
	}

	for q.len() > 0 {
		p := q.pop()
		for d := grid.N; d <= grid.NW; d++ {
			nid, ok := def.Neighbour(p.cid, d)
			if !ok || visited[nid] || !e.IsValid(nid) {
				continue
			}
			visited[nid] = true
			z0 := e.Z[nid]
			if p.z-z0 > maxd {
				r.Pit[nid] = true
				q.push(z0, nid)
				continue
			}
			if p.z > z0 {
				r.Z[nid] = p.z
				r.Raised++
			}
			r.Parent[nid] = p.cid
			q.push(r.Z[nid], nid)
		}
	}

	for cid := range n {
		if !visited[cid] && e.IsValid(cid) {
			r.Pit[cid] = true
		}
	}
	return r, nil
}

// NumPits counts the cells marked as pits.
func (r *Result) NumPits() int {
	np := 0
	for _, b := range r.Pit {
		if b {
			np++
		}
	}
	return np
}

func (o Options) validate(e *grid.Elevation) (float64, error) {
	if e == nil {
		return 0., fmt.Errorf("fill: nil elevation grid: %w", errs.ErrInvalidInput)
	}
	if _, err := ParseOutlets(string(o.Outlets)); err != nil {
		return 0., err
	}
	for _, cid := range o.Idxs {
		if !e.Def.Contains(cid) {
			return 0., fmt.Errorf("fill: outlet cell %d outside grid: %w", cid, errs.ErrInvalidInput)
		}
		if !e.IsValid(cid) {
			return 0., fmt.Errorf("fill: outlet cell %d is nodata: %w", cid, errs.ErrInvalidInput)
		}
	}
	switch {
	case math.IsNaN(o.MaxDepth) || o.MaxDepth < 0.:
		return 0., fmt.Errorf("fill: max depth must be positive, got %v: %w", o.MaxDepth, errs.ErrInvalidInput)
	case o.MaxDepth == 0.:
		return math.Inf(1), nil
	}
	return o.MaxDepth, nil
}

// lowestEdge returns the lowest valid border cell, the first on ties; -1 if none.
func lowestEdge(e *grid.Elevation) int {
	c0, z0 := -1, math.Inf(1)
	for cid := range e.Def.NumCells() {
		if e.Def.IsEdge(cid) && e.IsValid(cid) && e.Z[cid] < z0 {
			c0, z0 = cid, e.Z[cid]
		}
	}
	return c0
}
