package flwdir

import (
	"fmt"

	"github.com/maseology/flwdir/errs"
)

// StreamCells returns the cells, ascending, whose contributing area exceeds
// threshold (in the squared units of UpstreamArea), a drainage-area based
// alternative to the Strahler threshold of Streams.
func (r *FlwDirRaster) StreamCells(threshold float64) ([]int, error) {
	if !(threshold >= 0.) {
		return nil, fmt.Errorf("flwdir: stream threshold must be non-negative, got %v: %w", threshold, errs.ErrInvalidInput)
	}
	upa, err := r.UpstreamArea()
	if err != nil {
		return nil, err
	}
	strms := []int{}
	for cid, a := range upa {
		if r.net.IsValid(cid) && a > threshold {
			strms = append(strms, cid)
		}
	}
	return strms, nil
}

// Snap returns the first cell at or downstream of cid whose contributing area
// exceeds threshold, or the pit cid drains to when the path crosses no such
// cell.
func (r *FlwDirRaster) Snap(cid int, threshold float64) (int, error) {
	strms, err := r.StreamCells(threshold)
	if err != nil {
		return -1, err
	}
	if !r.def.Contains(cid) || !r.net.IsValid(cid) {
		return -1, fmt.Errorf("flwdir: cell %d is outside the grid or nodata: %w", cid, errs.ErrInvalidInput)
	}
	mask := make([]bool, r.def.NumCells())
	for _, c := range strms {
		mask[c] = true
	}
	return r.net.DownstreamMask(cid, mask), nil
}

// MainStem returns the flow path into the pit with the largest contributing
// area that follows, from the pit upwards, the upslope cell of largest area.
// Cells are ordered headwater first.
func (r *FlwDirRaster) MainStem() ([]int, error) {
	t, err := r.Network()
	if err != nil {
		return nil, err
	}
	upa := t.UpstreamArea(r.def)
	pits := t.Pits()
	cid := pits[0]
	for _, p := range pits[1:] {
		if upa[p] > upa[cid] {
			cid = p
		}
	}
	for u := t.MainUpstream(cid, upa); u >= 0; u = t.MainUpstream(cid, upa) {
		cid = u
	}
	return t.DownstreamPath(cid), nil
}
