package tem

// Tree returns the cells grouped by distance from their pit: level 0 holds
// the pits, level k the cells k steps upslope. Cells within a level are
// independent of one another.
func (t *TEM) Tree() [][]int {
	lvl := make([]int, len(t.pits))
	copy(lvl, t.pits)
	var o [][]int
	for len(lvl) > 0 {
		o = append(o, lvl)
		var nxt []int
		for _, cid := range lvl {
			for _, u := range t.us[t.usptr[cid]:t.usptr[cid+1]] {
				nxt = append(nxt, int(u))
			}
		}
		lvl = nxt
	}
	return o
}

// Contributing returns cid and every cell draining to it, in topologically
// safe order (cid last).
func (t *TEM) Contributing(cid int) []int {
	o := []int{cid}
	for k := 0; k < len(o); k++ {
		c := o[k]
		for _, u := range t.us[t.usptr[c]:t.usptr[c+1]] {
			o = append(o, int(u))
		}
	}
	for i, j := 0, len(o)-1; i < j; i, j = i+1, j-1 {
		o[i], o[j] = o[j], o[i]
	}
	return o
}

// Basins labels every valid cell with the 1-based position of its pit in
// Pits(); nodata cells get 0.
func (t *TEM) Basins() []int {
	b := make([]int, len(t.ds))
	for i, p := range t.pits {
		b[p] = i + 1
	}
	for k := len(t.order) - 1; k >= 0; k-- {
		if c := t.order[k]; t.ds[c] >= 0 {
			b[c] = b[t.ds[c]]
		}
	}
	return b
}
