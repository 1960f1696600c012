package grid

import (
	"fmt"
	"math"

	"github.com/maseology/flwdir/errs"
)

// Elevation is a read-only elevation raster.
type Elevation struct {
	Def    *Definition
	Z      []float64
	Nodata float64
	nvalid int
}

// NewElevation wraps z (row-major, len Nrow*Ncol). Cells equal to nodata, or
// NaN, are excluded from all flow computations.
func NewElevation(def *Definition, z []float64, nodata float64) (*Elevation, error) {
	if def == nil {
		return nil, fmt.Errorf("grid: nil definition: %w", errs.ErrInvalidInput)
	}
	if len(z) != def.NumCells() {
		return nil, fmt.Errorf("grid: %d elevations given for a %dx%d grid: %w", len(z), def.Nrow, def.Ncol, errs.ErrInvalidInput)
	}
	e := &Elevation{Def: def, Z: z, Nodata: nodata}
	for i, v := range z {
		if !e.IsValid(i) {
			continue
		}
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("grid: infinite elevation at cell %d: %w", i, errs.ErrInvalidInput)
		}
		e.nvalid++
	}
	if e.nvalid == 0 {
		return nil, fmt.Errorf("grid: no valid cells: %w", errs.ErrInvalidInput)
	}
	return e, nil
}

// IsValid is false for nodata cells.
func (e *Elevation) IsValid(cid int) bool {
	v := e.Z[cid]
	return v != e.Nodata && !math.IsNaN(v)
}

// NumValid returns the count of cells carrying an elevation.
func (e *Elevation) NumValid() int { return e.nvalid }
