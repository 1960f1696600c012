package tem

import (
	"fmt"

	"github.com/maseology/flwdir/errs"
	"github.com/maseology/flwdir/grid"
)

// New builds the topologic model from a flow direction grid. Directions
// pointing off the grid or into nodata are rejected; a cycle is reported as
// an internal inconsistency.
func New(def *grid.Definition, dirs []grid.Dir) (*TEM, error) {
	n := def.NumCells()
	if len(dirs) != n {
		return nil, fmt.Errorf("tem: %d directions given for %d cells: %w", len(dirs), n, errs.ErrInvalidInput)
	}

	t := TEM{
		ds:    make([]int, n),
		valid: make([]bool, n),
		usptr: make([]int32, n+1),
	}
	for cid, d := range dirs {
		t.ds[cid] = -1
		switch {
		case d == grid.Nodata:
			continue
		case d == grid.NoFlow:
			t.valid[cid] = true
			t.pits = append(t.pits, cid)
			continue
		case !d.IsFlow():
			return nil, fmt.Errorf("tem: cell %d has invalid direction %d: %w", cid, d, errs.ErrInvalidInput)
		}
		t.valid[cid] = true
		nid, ok := def.Neighbour(cid, d)
		if !ok {
			return nil, fmt.Errorf("tem: cell %d drains off the grid (%v): %w", cid, d, errs.ErrInvalidInput)
		}
		if dirs[nid] == grid.Nodata {
			return nil, fmt.Errorf("tem: cell %d drains into nodata cell %d: %w", cid, nid, errs.ErrInvalidInput)
		}
		t.ds[cid] = nid
		t.usptr[nid+1]++
	}
	t.buildUpslopes()
	if err := t.buildOrder(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *TEM) buildUpslopes() {
	n := len(t.ds)
	for i := 0; i < n; i++ {
		t.usptr[i+1] += t.usptr[i]
	}
	t.us = make([]int32, t.usptr[n])
	next := make([]int32, n)
	copy(next, t.usptr[:n])
	for cid, d := range t.ds {
		if d >= 0 {
			t.us[next[d]] = int32(cid)
			next[d]++
		}
	}
}

// buildOrder sorts cells by repeatedly removing those with no unresolved
// upslope cell (Kahn).
func (t *TEM) buildOrder() error {
	nup := make([]int32, len(t.ds))
	q := make([]int, 0, len(t.ds))
	for cid, v := range t.valid {
		if !v {
			continue
		}
		t.nvalid++
		nup[cid] = t.usptr[cid+1] - t.usptr[cid]
		if nup[cid] == 0 {
			q = append(q, cid)
		}
	}
	for k := 0; k < len(q); k++ {
		if d := t.ds[q[k]]; d >= 0 {
			nup[d]--
			if nup[d] == 0 {
				q = append(q, d)
			}
		}
	}
	if len(q) != t.nvalid {
		return fmt.Errorf("tem: %d of %d cells lie on or above a flow loop: %w", t.nvalid-len(q), t.nvalid, errs.ErrInternalInconsistency)
	}
	t.order = q
	return nil
}
