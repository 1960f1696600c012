// Package strahler computes Strahler stream order over a topologic elevation
// model and extracts stream segments as cell-centre polylines.
package strahler

import (
	"iter"

	"github.com/maseology/flwdir/grid"
	"github.com/maseology/flwdir/tem"
)

// Order returns the Strahler order of every cell; 0 for nodata.
//
// Headwaters are order 1. Downstream, a cell takes the largest order among
// its upslope cells, plus one when two or more of them attain it.
func Order(t *tem.TEM) []int {
	n := t.NumCells()
	ord := make([]int, n)
	omax := make([]int, n) // largest upslope order
	nmax := make([]int, n) // upslope cells attaining omax
	for _, cid := range t.Order() {
		switch {
		case nmax[cid] == 0:
			ord[cid] = 1
		case nmax[cid] >= 2:
			ord[cid] = omax[cid] + 1
		default:
			ord[cid] = omax[cid]
		}
		d := t.Downstream(cid)
		if d < 0 {
			continue
		}
		switch {
		case ord[cid] > omax[d]:
			omax[d], nmax[d] = ord[cid], 1
		case ord[cid] == omax[d]:
			nmax[d]++
		}
	}
	return ord
}

// Point is a cell centre in the coordinates of the grid transform.
type Point struct {
	X, Y float64
}

// Segment is a run of stream cells from a stream head or junction down to
// the next junction or outlet, both ends included.
type Segment struct {
	Cids   []int
	Points []Point
	Order  int // Strahler order of the segment's cells
}

// Segments lazily yields the stream segments made of cells with order at
// least minOrder. Segments start at stream heads and at junctions (cells with
// two or more qualifying upslope cells) and are yielded with their start
// cells in topological order. Single-cell segments are skipped.
//
// The sequence holds no state of its own and may be ranged over repeatedly.
func Segments(t *tem.TEM, def *grid.Definition, ord []int, minOrder int) iter.Seq[Segment] {
	if minOrder < 1 {
		minOrder = 1
	}
	stream := func(cid int) bool { return ord[cid] >= minOrder }

	return func(yield func(Segment) bool) {
		nq := make([]int, t.NumCells()) // qualifying upslope cells
		for _, cid := range t.Order() {
			if d := t.Downstream(cid); d >= 0 && stream(cid) {
				nq[d]++
			}
		}
		for _, c0 := range t.Order() {
			if !stream(c0) || nq[c0] == 1 {
				continue // not a stream head or junction
			}
			s := Segment{Order: ord[c0], Cids: []int{c0}}
			for c := t.Downstream(c0); c >= 0; c = t.Downstream(c) {
				s.Cids = append(s.Cids, c)
				if nq[c] >= 2 {
					break
				}
			}
			if len(s.Cids) < 2 {
				continue
			}
			s.Points = make([]Point, len(s.Cids))
			for i, c := range s.Cids {
				s.Points[i].X, s.Points[i].Y = def.CellCentre(c)
			}
			if !yield(s) {
				return
			}
		}
	}
}
