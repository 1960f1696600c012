package grid

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/flwdir/errs"
)

// ReadGDEF imports a grid definition file:
//
//	OE   x-origin (west)
//	ON   y-origin (north)
//	ROT  rotation, must be 0
//	NR   number of rows
//	NC   number of columns
//	CS   cell size, prefixed with 'U' for uniform cells
//	[latlon]  optional, geographic coordinates
func ReadGDEF(fp string) (*Definition, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("ReadGDEF: %v", err)
	}
	a := make([]string, 0, 7)
	for _, ln := range strings.Split(string(b), "\n") {
		if s := strings.TrimSpace(ln); len(s) > 0 {
			a = append(a, s)
		}
	}
	if len(a) < 6 {
		return nil, fmt.Errorf("ReadGDEF %s: expecting at least 6 lines, found %d: %w", fp, len(a), errs.ErrInvalidInput)
	}

	stErr := make([]string, 0)
	errfunc := func(v string, err error) {
		stErr = append(stErr, fmt.Sprintf("failed to read '%v': %v", v, err))
	}
	oe, err := strconv.ParseFloat(a[0], 64)
	if err != nil {
		errfunc("OE", err)
	}
	on, err := strconv.ParseFloat(a[1], 64)
	if err != nil {
		errfunc("ON", err)
	}
	rot, err := strconv.ParseFloat(a[2], 64)
	if err != nil {
		errfunc("ROT", err)
	}
	nr, err := strconv.Atoi(a[3])
	if err != nil {
		errfunc("NR", err)
	}
	nc, err := strconv.Atoi(a[4])
	if err != nil {
		errfunc("NC", err)
	}
	if a[5][0] != 'U' {
		stErr = append(stErr, "non-uniform grids currently not supported")
	}
	cs, err := strconv.ParseFloat(strings.TrimPrefix(a[5], "U"), 64)
	if err != nil {
		errfunc("CS", err)
	}
	if rot != 0. {
		stErr = append(stErr, fmt.Sprintf("rotated grids currently not supported (ROT=%v)", rot))
	}
	if len(stErr) > 0 {
		return nil, fmt.Errorf("ReadGDEF %s: %s: %w", fp, strings.Join(stErr, "; "), errs.ErrInvalidInput)
	}

	latlon := len(a) > 6 && strings.EqualFold(a[6], "latlon")
	return NewDefinition(nr, nc, Affine{cs, 0, oe, 0, -cs, on}, latlon)
}

// WriteGDEF saves a grid definition with uniform cells.
func WriteGDEF(fp string, d *Definition) error {
	xres, yres := d.Transform.Res()
	if xres != -yres {
		return fmt.Errorf("WriteGDEF: cells must be uniform and north-up (%v, %v): %w", xres, yres, errs.ErrInvalidInput)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v\n%v\n0\n%d\n%d\nU%v\n", d.Transform[2], d.Transform[5], d.Nrow, d.Ncol, xres)
	if d.LatLon {
		sb.WriteString("latlon\n")
	}
	if err := os.WriteFile(fp, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("WriteGDEF failed: %v", err)
	}
	return nil
}
