package flwdir

import (
	"fmt"
	"time"

	"github.com/maseology/flwdir/d8"
	"github.com/maseology/flwdir/errs"
	"github.com/maseology/flwdir/fill"
	"github.com/maseology/flwdir/grid"
)

// FromDEM fills the depressions of a row-major elevation array and assigns D8
// flow directions to the result. z is not modified.
func FromDEM(z []float64, nrow, ncol int, o Options) (*FlwDirRaster, error) {
	log := o.logger()
	tt := time.Now()

	def, err := o.definition(nrow, ncol)
	if err != nil {
		return nil, err
	}
	e, err := grid.NewElevation(def, z, o.NodataValue())
	if err != nil {
		return nil, err
	}
	outlets, err := fill.ParseOutlets(o.Outlets)
	if err != nil {
		return nil, err
	}
	log.Debugw("elevation loaded", "nrow", nrow, "ncol", ncol, "valid", e.NumValid(), "latlon", def.LatLon)

	f, err := fill.Fill(e, fill.Options{Outlets: outlets, Idxs: o.Idxs, MaxDepth: o.MaxDepth})
	if err != nil {
		return nil, err
	}
	log.Infow("depressions filled", "outlets", len(f.Seeds), "raised", f.Raised, "pits", f.NumPits(), "elapsed", time.Since(tt))

	tt = time.Now()
	dirs, err := d8.Assign(e, f)
	if err != nil {
		return nil, err
	}
	log.Infow("flow directions assigned", "cells", e.NumValid(), "elapsed", time.Since(tt))

	return &FlwDirRaster{
		def:    def,
		nodata: o.NodataValue(),
		dem:    append([]float64(nil), z...),
		zfill:  f.Z,
		dirs:   dirs,
		raised: f.Raised,
		log:    log,
	}, nil
}

// FromArray imports a row-major flow direction raster encoded in the named
// convention ("d8" or "ldd"). Elevation dependent queries return nil.
func FromArray(codes []uint8, convention string, nrow, ncol int, o Options) (*FlwDirRaster, error) {
	log := o.logger()

	def, err := o.definition(nrow, ncol)
	if err != nil {
		return nil, err
	}
	if len(codes) != def.NumCells() {
		return nil, fmt.Errorf("flwdir: %d direction codes for a %dx%d grid: %w", len(codes), nrow, ncol, errs.ErrInvalidInput)
	}
	conv, err := d8.ParseConvention(convention)
	if err != nil {
		return nil, err
	}
	dirs, err := d8.Decode(codes, conv)
	if err != nil {
		return nil, err
	}
	nvalid := 0
	for _, d := range dirs {
		if d != grid.Nodata {
			nvalid++
		}
	}
	if nvalid == 0 {
		return nil, fmt.Errorf("flwdir: direction raster holds nodata only: %w", errs.ErrInvalidInput)
	}
	log.Infow("flow directions imported", "convention", conv.Name, "nrow", nrow, "ncol", ncol, "valid", nvalid)

	r := &FlwDirRaster{
		def:    def,
		nodata: o.NodataValue(),
		dirs:   dirs,
		log:    log,
	}
	if _, err := r.Network(); err != nil {
		return nil, err // imported rasters may point off-grid or loop
	}
	return r, nil
}
