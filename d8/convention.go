package d8

import (
	"fmt"

	"github.com/maseology/flwdir/errs"
	"github.com/maseology/flwdir/grid"
)

// Convention is an external flow direction encoding.
type Convention struct {
	Name   string
	codes  [8]uint8 // indexed by grid.Dir
	Pit    uint8
	Nodata uint8
}

var (
	// D8 is the ESRI/ArcGIS power-of-two encoding.
	D8 = Convention{
		Name:   "d8",
		codes:  [8]uint8{64, 128, 1, 2, 4, 8, 16, 32},
		Pit:    0,
		Nodata: 247,
	}

	// LDD is the PCRaster local drain direction (numeric keypad) encoding.
	LDD = Convention{
		Name:   "ldd",
		codes:  [8]uint8{8, 9, 6, 3, 2, 1, 4, 7},
		Pit:    5,
		Nodata: 255,
	}
)

var conventions = map[string]Convention{D8.Name: D8, LDD.Name: LDD}

// ParseConvention looks up a convention by name.
func ParseConvention(name string) (Convention, error) {
	if c, ok := conventions[name]; ok {
		return c, nil
	}
	return Convention{}, fmt.Errorf("d8: convention %q: %w", name, errs.ErrUnsupported)
}

// Code returns the external code of d.
func (c Convention) Code(d grid.Dir) (uint8, error) {
	switch {
	case c.Name == "":
		return 0, fmt.Errorf("d8: empty convention: %w", errs.ErrUnsupported)
	case d.IsFlow():
		return c.codes[d], nil
	case d == grid.NoFlow:
		return c.Pit, nil
	case d == grid.Nodata:
		return c.Nodata, nil
	}
	return 0, fmt.Errorf("d8: invalid direction %d: %w", d, errs.ErrInvalidInput)
}

// Dir returns the internal direction of an external code.
func (c Convention) Dir(code uint8) (grid.Dir, error) {
	switch code {
	case c.Pit:
		return grid.NoFlow, nil
	case c.Nodata:
		return grid.Nodata, nil
	}
	for d, v := range c.codes {
		if v == code {
			return grid.Dir(d), nil
		}
	}
	return grid.Nodata, fmt.Errorf("d8: code %d is not part of the %s convention: %w", code, c.Name, errs.ErrInvalidInput)
}

// Encode converts directions to external codes.
func Encode(dirs []grid.Dir, c Convention) ([]uint8, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("d8: empty convention: %w", errs.ErrUnsupported)
	}
	o := make([]uint8, len(dirs))
	for i, d := range dirs {
		v, err := c.Code(d)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		o[i] = v
	}
	return o, nil
}

// Decode converts external codes to directions.
func Decode(codes []uint8, c Convention) ([]grid.Dir, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("d8: empty convention: %w", errs.ErrUnsupported)
	}
	o := make([]grid.Dir, len(codes))
	for i, v := range codes {
		d, err := c.Dir(v)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		o[i] = d
	}
	return o, nil
}
