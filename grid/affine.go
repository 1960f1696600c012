package grid

import (
	"fmt"
	"math"

	"github.com/maseology/flwdir/errs"
)

// Affine is a six-term transform in rasterio order:
//
//	x = a*col + b*row + c
//	y = d*col + e*row + f
type Affine [6]float64

// Identity maps cell (r,c) onto (x,y) = (c,r).
var Identity = Affine{1, 0, 0, 0, 1, 0}

// XY returns the coordinate of a fractional (row, col) position.
func (a Affine) XY(row, col float64) (float64, float64) {
	return a[0]*col + a[1]*row + a[2], a[3]*col + a[4]*row + a[5]
}

// Res returns the cell width and (signed) cell height.
func (a Affine) Res() (float64, float64) { return a[0], a[4] }

// IsIdentity is true for the default transform.
func (a Affine) IsIdentity() bool { return a == Identity }

func (a Affine) validate() error {
	for i, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("grid: transform term %d is not finite: %w", i, errs.ErrInvalidInput)
		}
	}
	if a[1] != 0. || a[3] != 0. {
		return fmt.Errorf("grid: rotated transforms are not supported: %w", errs.ErrInvalidInput)
	}
	if a[0] == 0. || a[4] == 0. {
		return fmt.Errorf("grid: transform has zero resolution: %w", errs.ErrInvalidInput)
	}
	return nil
}
