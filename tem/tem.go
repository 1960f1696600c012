// Package tem holds the topologic elevation model: the downslope forest
// implied by a flow direction grid, with its inverse (upslope) adjacency and
// a topologically safe cell ordering.
package tem

// TEM topologic elevation model. All slices are indexed by grid cell id.
type TEM struct {
	ds     []int   // downslope cell id, -1 for pits and nodata
	valid  []bool  // cell carries a direction
	usptr  []int32 // upslope ids of cid are us[usptr[cid]:usptr[cid+1]]
	us     []int32
	order  []int // topologically safe order, headwaters first
	pits   []int
	nvalid int
}

// NumCells number of cells in the grid, valid or not.
func (t *TEM) NumCells() int { return len(t.ds) }

// NumValid number of cells that make up the TEM.
func (t *TEM) NumValid() int { return t.nvalid }

// IsValid is false for nodata cells.
func (t *TEM) IsValid(cid int) bool { return t.valid[cid] }

// Downstream returns the downslope cell id, -1 at pits and nodata.
func (t *TEM) Downstream(cid int) int { return t.ds[cid] }

// NumUpstream number of cells draining directly into cid.
func (t *TEM) NumUpstream(cid int) int { return int(t.usptr[cid+1] - t.usptr[cid]) }

// UpIDs returns the cells draining directly into cid, ascending.
func (t *TEM) UpIDs(cid int) []int {
	u := t.us[t.usptr[cid]:t.usptr[cid+1]]
	o := make([]int, len(u))
	for i, v := range u {
		o[i] = int(v)
	}
	return o
}

// Order returns valid cell ids such that every cell precedes its downslope
// cell. The slice is shared and must not be modified.
func (t *TEM) Order() []int { return t.order }

// Pits returns the terminal cells (no downslope cell), ascending.
func (t *TEM) Pits() []int { return t.pits }

// Headwaters returns the valid cells with no upslope cell, ascending.
func (t *TEM) Headwaters() []int {
	var o []int
	for cid, v := range t.valid {
		if v && t.usptr[cid+1] == t.usptr[cid] {
			o = append(o, cid)
		}
	}
	return o
}

// DownstreamPath returns the cells from cid down to its pit, both included.
func (t *TEM) DownstreamPath(cid int) []int {
	o := []int{cid}
	for t.ds[cid] >= 0 {
		cid = t.ds[cid]
		o = append(o, cid)
	}
	return o
}

// DownstreamMask returns the nearest cell at or below cid for which mask is
// true, or the pit cid drains to when there is none.
func (t *TEM) DownstreamMask(cid int, mask []bool) int {
	for !mask[cid] && t.ds[cid] >= 0 {
		cid = t.ds[cid]
	}
	return cid
}
