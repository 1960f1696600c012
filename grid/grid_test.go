package grid

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/flwdir/errs"
)

func TestNeighbours(t *testing.T) {
	d, err := NewDefinition(3, 4, Identity, false)
	require.NoError(t, err)

	tests := []struct {
		name string
		cid  int
		want []int
	}{
		{"corner", 0, []int{1, 5, 4}},
		{"interior", 5, []int{1, 2, 6, 10, 9, 8, 4, 0}},
		{"last", 11, []int{7, 10, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, n := range d.Neighbours(tt.cid) {
				got = append(got, n.Cid)
				if n.Dir.IsDiagonal() {
					assert.InDelta(t, math.Sqrt2, n.W, 1e-12)
				} else {
					assert.Equal(t, 1., n.W)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEdgeAndIndex(t *testing.T) {
	d, err := NewDefinition(3, 3, Identity, false)
	require.NoError(t, err)
	for cid := range d.NumCells() {
		r, c := d.RowCol(cid)
		assert.Equal(t, cid, d.CellID(r, c))
		assert.Equal(t, cid != 4, d.IsEdge(cid), "cell %d", cid)
	}
	_, ok := d.Neighbour(0, NW)
	assert.False(t, ok)
	_, ok = d.Neighbour(4, NoFlow)
	assert.False(t, ok)
}

func TestDefinitionValidation(t *testing.T) {
	tests := []struct {
		name   string
		nr, nc int
		tf     Affine
		latlon bool
	}{
		{"empty", 0, 3, Identity, false},
		{"zero resolution", 3, 3, Affine{0, 0, 0, 0, -1, 0}, false},
		{"rotated", 3, 3, Affine{1, .5, 0, 0, -1, 0}, false},
		{"nan", 3, 3, Affine{math.NaN(), 0, 0, 0, -1, 0}, false},
		{"latlon identity", 3, 3, Identity, true},
		{"latlon beyond pole", 10, 10, Affine{1, 0, 0, 0, -1, 95}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefinition(tt.nr, tt.nc, tt.tf, tt.latlon)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}
}

func TestLatLonDistance(t *testing.T) {
	res := 1. / 120. // 30 arc-seconds
	d, err := NewDefinition(4, 4, Affine{res, 0, 10, 0, -res, 50}, true)
	require.NoError(t, err)

	ns := d.Distance(5, N)
	ew := d.Distance(5, E)
	diag := d.Distance(5, NE)
	// ~111 km / 120
	assert.InDelta(t, 926.6, ns, 1.)
	// meridians converge at 50°N
	assert.Less(t, ew, ns)
	assert.InDelta(t, math.Hypot(ns, ew), diag, 2.)
	assert.InDelta(t, DegreeMetresX(50.)*res*DegreeMetresY(50.)*res, d.CellArea(5), 1e3)
}

func TestElevation(t *testing.T) {
	d, _ := NewDefinition(2, 2, Identity, false)
	_, err := NewElevation(d, []float64{-9999, -9999, -9999, math.NaN()}, -9999)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = NewElevation(d, []float64{1, 2, 3}, -9999)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	e, err := NewElevation(d, []float64{1, -9999, math.NaN(), 4}, -9999)
	require.NoError(t, err)
	assert.Equal(t, 2, e.NumValid())
	assert.True(t, e.IsValid(0))
	assert.False(t, e.IsValid(1))
	assert.False(t, e.IsValid(2))
}

func TestDir(t *testing.T) {
	for d := N; d <= NW; d++ {
		dr, dc := d.Offset()
		or, oc := d.Opposite().Offset()
		assert.Equal(t, -dr, or)
		assert.Equal(t, -dc, oc)
	}
	assert.Equal(t, "pit", NoFlow.String())
	assert.Equal(t, "nodata", Nodata.String())
	assert.False(t, NoFlow.IsFlow())
}

func TestGDEFAndBIL(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDefinition(2, 3, Affine{50, 0, 500000, 0, -50, 4800000}, false)
	require.NoError(t, err)

	gfp := filepath.Join(dir, "grid.gdef")
	require.NoError(t, WriteGDEF(gfp, d))
	d2, err := ReadGDEF(gfp)
	require.NoError(t, err)
	assert.Equal(t, d.Nrow, d2.Nrow)
	assert.Equal(t, d.Ncol, d2.Ncol)
	assert.Equal(t, d.Transform, d2.Transform)

	z := []float64{1, 2.5, 3, -9999, 5, 6}
	zfp := filepath.Join(dir, "dem.bil")
	require.NoError(t, WriteFloats32(zfp, z))
	got, err := ReadFloats32(zfp, len(z))
	require.NoError(t, err)
	assert.Equal(t, z, got)

	_, err = ReadFloats32(zfp, 5)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	bad := filepath.Join(dir, "bad.gdef")
	require.NoError(t, os.WriteFile(bad, []byte("0\n0\n0\n2\n3\n50\n"), 0644))
	_, err = ReadGDEF(bad)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}
