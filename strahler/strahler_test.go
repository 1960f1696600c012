package strahler

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/flwdir/grid"
	"github.com/maseology/flwdir/tem"
)

const x = grid.Nodata

// river: two pairs of headwaters form order-2 streams which meet at cell 13;
// a single headwater (10) joins the western order-2 stream at 11.
//
//	SE  .  SW SE  S
//	 .  S  .  .  SW
//	 E  E  E  E  .
var river = []grid.Dir{
	grid.SE, x, grid.SW, grid.SE, grid.S,
	x, grid.S, x, x, grid.SW,
	grid.E, grid.E, grid.E, grid.E, grid.NoFlow,
}

func build(t *testing.T, nr, nc int, dirs []grid.Dir) (*grid.Definition, *tem.TEM) {
	t.Helper()
	def, err := grid.NewDefinition(nr, nc, grid.Identity, false)
	require.NoError(t, err)
	tm, err := tem.New(def, dirs)
	require.NoError(t, err)
	return def, tm
}

func TestOrder(t *testing.T) {
	_, tm := build(t, 3, 5, river)
	ord := Order(tm)
	assert.Equal(t, []int{
		1, 0, 1, 1, 1,
		0, 2, 0, 0, 2,
		1, 2, 2, 3, 3,
	}, ord)
}

func TestOrderConfluence(t *testing.T) {
	dirs := []grid.Dir{
		grid.SE, grid.S, grid.SW,
		grid.E, grid.S, grid.W,
		grid.E, grid.NoFlow, grid.W,
	}
	_, tm := build(t, 3, 3, dirs)
	ord := Order(tm)
	assert.Equal(t, 2, ord[4]) // five headwaters
	assert.Equal(t, 2, ord[7]) // one order-2 and two order-1 tributaries
	for _, cid := range tm.Headwaters() {
		assert.Equal(t, 1, ord[cid])
	}
}

func TestOrderIsolatedPit(t *testing.T) {
	_, tm := build(t, 1, 3, []grid.Dir{grid.NoFlow, x, grid.NoFlow})
	assert.Equal(t, []int{1, 0, 1}, Order(tm))
}

func TestSegments(t *testing.T) {
	def, tm := build(t, 3, 5, river)
	ord := Order(tm)

	cids := func(minOrder int) [][]int {
		var o [][]int
		for s := range Segments(tm, def, ord, minOrder) {
			o = append(o, s.Cids)
		}
		return o
	}

	assert.Equal(t, [][]int{
		{0, 6}, {2, 6}, {3, 9}, {4, 9}, {10, 11},
		{6, 11}, {9, 13}, {11, 12, 13}, {13, 14},
	}, cids(1))
	assert.Equal(t, [][]int{{6, 11, 12, 13}, {9, 13}, {13, 14}}, cids(2))
	assert.Equal(t, [][]int{{13, 14}}, cids(3))
	assert.Empty(t, cids(4))
	assert.Equal(t, cids(1), cids(0))
}

func TestSegmentAttributes(t *testing.T) {
	def, tm := build(t, 3, 5, river)
	ord := Order(tm)

	segs := slices.Collect(Segments(tm, def, ord, 2))
	require.Len(t, segs, 3)
	assert.Equal(t, []int{2, 2, 3}, []int{segs[0].Order, segs[1].Order, segs[2].Order})
	assert.Equal(t, []Point{{3.5, 2.5}, {4.5, 2.5}}, segs[2].Points)
	for _, s := range segs {
		assert.Len(t, s.Points, len(s.Cids))
		assert.GreaterOrEqual(t, len(s.Cids), 2)
	}
}

func TestSegmentsRestartable(t *testing.T) {
	def, tm := build(t, 3, 5, river)
	seq := Segments(tm, def, Order(tm), 1)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
	assert.Equal(t, first, slices.Collect(seq))
}

func TestSegmentsSkipSingleCells(t *testing.T) {
	def, tm := build(t, 1, 3, []grid.Dir{grid.NoFlow, x, grid.NoFlow})
	assert.Empty(t, slices.Collect(Segments(tm, def, Order(tm), 1)))
}
