// Package flwdir derives depression-free D8 flow direction networks and
// Strahler-ordered stream segments from raster elevation models.
//
// A FlwDirRaster is built from an elevation array with FromDEM, or from an
// encoded direction raster with FromArray. The flow network and stream order
// are computed on first use and cached on the handle.
package flwdir

import (
	"go.uber.org/zap"

	"github.com/maseology/flwdir/errs"
	"github.com/maseology/flwdir/fill"
	"github.com/maseology/flwdir/grid"
)

// Errors returned by this package and its sub-packages; test with errors.Is.
var (
	ErrInvalidInput          = errs.ErrInvalidInput
	ErrInternalInconsistency = errs.ErrInternalInconsistency
	ErrUnsupported           = errs.ErrUnsupported
)

// Options is the configuration surface of FromDEM and FromArray.
type Options struct {
	Nodata    *float64    `yaml:"nodata"`    // nodata sentinel, nil is -9999; NaN is always nodata
	Transform grid.Affine `yaml:"transform"` // zero value is the identity
	LatLon    bool        `yaml:"latlon"`    // geographic coordinates, great-circle distances
	Outlets   string      `yaml:"outlets"`   // "edge" (default) or "min"
	Idxs      []int       `yaml:"idxs"`      // additional outlet cells
	MaxDepth  float64     `yaml:"max_depth"` // largest fill depth; 0 is unbounded

	Logger *zap.SugaredLogger `yaml:"-"` // nil logs nothing
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Transform: grid.Identity,
		Outlets:   string(fill.Edge),
	}
}

// DefaultNodata is the nodata sentinel of Options without one.
const DefaultNodata = -9999.

// NodataValue returns the nodata sentinel in effect.
func (o Options) NodataValue() float64 {
	if o.Nodata == nil {
		return DefaultNodata
	}
	return *o.Nodata
}

func (o Options) logger() *zap.SugaredLogger {
	if o.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return o.Logger
}

func (o Options) definition(nrow, ncol int) (*grid.Definition, error) {
	tf := o.Transform
	if tf == (grid.Affine{}) {
		tf = grid.Identity
	}
	return grid.NewDefinition(nrow, ncol, tf, o.LatLon)
}
