package fill

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/flwdir/errs"
	"github.com/maseology/flwdir/grid"
)

const nodata = -9999.

func elevation(t *testing.T, nr, nc int, z []float64) *grid.Elevation {
	t.Helper()
	def, err := grid.NewDefinition(nr, nc, grid.Identity, false)
	require.NoError(t, err)
	e, err := grid.NewElevation(def, z, nodata)
	require.NoError(t, err)
	return e
}

func randomDEM(t *testing.T, nr, nc int, seed uint64) *grid.Elevation {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 7))
	z := make([]float64, nr*nc)
	for i := range z {
		z[i] = float64(rng.IntN(20))
		if rng.IntN(25) == 0 {
			z[i] = nodata
		}
	}
	return elevation(t, nr, nc, z)
}

// checkDrainage asserts every reached non-outlet cell has a flood parent
// that is a neighbour no higher than itself.
func checkDrainage(t *testing.T, e *grid.Elevation, r *Result) {
	t.Helper()
	seeds := make(map[int]bool, len(r.Seeds))
	for _, s := range r.Seeds {
		seeds[s] = true
	}
	for cid := range e.Def.NumCells() {
		if !e.IsValid(cid) {
			assert.Equal(t, nodata, r.Z[cid])
			continue
		}
		assert.GreaterOrEqual(t, r.Z[cid], e.Z[cid], "cell %d lowered", cid)
		if seeds[cid] || r.Pit[cid] {
			continue
		}
		p := r.Parent[cid]
		require.GreaterOrEqual(t, p, 0, "cell %d has no parent", cid)
		assert.LessOrEqual(t, r.Z[p], r.Z[cid])
		isNeighbour := false
		for _, n := range e.Def.Neighbours(cid) {
			isNeighbour = isNeighbour || n.Cid == p
		}
		assert.True(t, isNeighbour, "parent of %d is not adjacent", cid)
	}
}

func TestFillSingleCellPit(t *testing.T) {
	e := elevation(t, 3, 3, []float64{
		10, 9, 8,
		7, 5, 6,
		6, 6, 6,
	})
	r, err := Fill(e, Options{})
	require.NoError(t, err)

	assert.Equal(t, 6., r.Z[4])
	assert.Equal(t, 5, r.Parent[4]) // first elevation-6 cell pushed
	assert.Equal(t, 1, r.Raised)
	assert.Zero(t, r.NumPits())
	assert.Equal(t, 5., e.Z[4], "input modified")
	checkDrainage(t, e, r)
}

func TestFillProperties(t *testing.T) {
	for seed := range uint64(5) {
		e := randomDEM(t, 24, 31, seed)
		r, err := Fill(e, Options{})
		require.NoError(t, err)
		checkDrainage(t, e, r)

		// filling a filled grid changes nothing
		e2, err := grid.NewElevation(e.Def, r.Z, nodata)
		require.NoError(t, err)
		r2, err := Fill(e2, Options{})
		require.NoError(t, err)
		assert.Equal(t, r.Z, r2.Z)
		assert.Zero(t, r2.Raised)
	}
}

func TestFillMaxDepth(t *testing.T) {
	z := []float64{
		10, 10, 10, 10, 10,
		10, 8, 8, 8, 10,
		10, 8, 0, 8, 10,
		10, 8, 8, 8, 10,
		10, 10, 10, 10, 10,
	}
	e := elevation(t, 5, 5, z)

	r, err := Fill(e, Options{})
	require.NoError(t, err)
	assert.Equal(t, 10., r.Z[12])
	assert.Zero(t, r.NumPits())

	r, err = Fill(e, Options{MaxDepth: 5.})
	require.NoError(t, err)
	assert.Equal(t, 0., r.Z[12])
	assert.True(t, r.Pit[12])
	assert.Equal(t, -1, r.Parent[12])
	assert.Equal(t, 10., r.Z[6])
	assert.Equal(t, 1, r.NumPits())
}

func TestFillEnclosedPocket(t *testing.T) {
	z := []float64{
		5, 5, 5, 5, 5,
		5, nodata, nodata, nodata, 5,
		5, nodata, 1, nodata, 5,
		5, nodata, nodata, nodata, 5,
		5, 5, 5, 5, 5,
	}
	e := elevation(t, 5, 5, z)
	r, err := Fill(e, Options{})
	require.NoError(t, err)
	assert.True(t, r.Pit[12])
	assert.Equal(t, 1., r.Z[12])
	assert.Equal(t, 1, r.NumPits())
}

func TestFillMinOutlet(t *testing.T) {
	e := elevation(t, 3, 3, []float64{
		5, 6, 7,
		6, 9, 8,
		7, 8, 4,
	})
	r, err := Fill(e, Options{Outlets: Min})
	require.NoError(t, err)
	assert.Equal(t, []int{8}, r.Seeds)
	assert.Zero(t, r.NumPits())
	assert.Equal(t, 8., r.Z[0])
	checkDrainage(t, e, r)

	r, err = Fill(e, Options{Outlets: Min, Idxs: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, []int{8, 0}, r.Seeds)
	assert.Equal(t, 5., r.Z[0])
}

func TestFillInvalid(t *testing.T) {
	e := elevation(t, 3, 3, []float64{
		nodata, nodata, nodata,
		nodata, 1, nodata,
		nodata, nodata, nodata,
	})
	tests := []struct {
		name string
		o    Options
	}{
		{"no seeds", Options{}},
		{"min without seeds", Options{Outlets: Min}},
		{"outlet outside", Options{Idxs: []int{9}}},
		{"outlet nodata", Options{Idxs: []int{0}}},
		{"negative depth", Options{Idxs: []int{4}, MaxDepth: -1}},
		{"policy", Options{Outlets: "lowest"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fill(e, tt.o)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}

	r, err := Fill(e, Options{Idxs: []int{4}})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, r.Seeds)
	for cid, b := range r.Outlet {
		assert.Equal(t, cid == 4, b, "cell %d", cid)
	}
}
