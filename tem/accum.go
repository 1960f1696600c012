package tem

import "github.com/maseology/flwdir/grid"

// UpCount returns the number of cells contributing to each cell, itself
// included (unit contributing area). Nodata cells get 0.
func (t *TEM) UpCount() []int {
	c := make([]int, len(t.ds))
	for _, cid := range t.order {
		c[cid]++
		if d := t.ds[cid]; d >= 0 {
			c[d] += c[cid]
		}
	}
	return c
}

// Accumulate sums w (one value per cell) downslope; nodata cells get 0.
func (t *TEM) Accumulate(w []float64) []float64 {
	a := make([]float64, len(t.ds))
	for _, cid := range t.order {
		a[cid] += w[cid]
		if d := t.ds[cid]; d >= 0 {
			a[d] += a[cid]
		}
	}
	return a
}

// UpstreamArea returns the contributing area of each cell in the units of
// def.CellArea.
func (t *TEM) UpstreamArea(def *grid.Definition) []float64 {
	w := make([]float64, len(t.ds))
	for cid, v := range t.valid {
		if v {
			w[cid] = def.CellArea(cid)
		}
	}
	return t.Accumulate(w)
}

// MainUpstream returns the upslope neighbour of cid with the largest upa,
// the first on ties; -1 at headwaters.
func (t *TEM) MainUpstream(cid int, upa []float64) int {
	u0, a0 := -1, 0.
	for _, u := range t.us[t.usptr[cid]:t.usptr[cid+1]] {
		if u0 < 0 || upa[u] > a0 {
			u0, a0 = int(u), upa[u]
		}
	}
	return u0
}
