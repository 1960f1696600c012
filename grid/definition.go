package grid

import (
	"fmt"
	"math"

	"github.com/maseology/flwdir/errs"
)

const earthRadius = 6371e3 // [m]

// Definition describes the raster a cell id refers to. Cell ids are linear,
// cid = r*Ncol + c.
type Definition struct {
	Nrow, Ncol int
	Transform  Affine
	LatLon     bool      // geographic coordinates: distances in metres along the sphere
	dw         []float64 // neighbour distance table, 8 per row when LatLon
}

// Neighbour is one entry of a cell's 8-neighbourhood.
type Neighbour struct {
	Cid int
	Dir Dir
	W   float64 // distance weight
}

// NewDefinition validates and builds a grid definition.
func NewDefinition(nrow, ncol int, tf Affine, latlon bool) (*Definition, error) {
	if nrow <= 0 || ncol <= 0 {
		return nil, fmt.Errorf("grid: invalid shape %dx%d: %w", nrow, ncol, errs.ErrInvalidInput)
	}
	if err := tf.validate(); err != nil {
		return nil, err
	}
	if latlon {
		if tf.IsIdentity() {
			return nil, fmt.Errorf("grid: latlon requires a geographic transform, got identity: %w", errs.ErrInvalidInput)
		}
		_, ytop := tf.XY(0., 0.)
		_, ybot := tf.XY(float64(nrow), 0.)
		if math.Abs(ytop) > 90. || math.Abs(ybot) > 90. {
			return nil, fmt.Errorf("grid: latlon grid extends beyond ±90° (%.4f, %.4f): %w", ytop, ybot, errs.ErrInvalidInput)
		}
	}
	d := &Definition{Nrow: nrow, Ncol: ncol, Transform: tf, LatLon: latlon}
	d.buildDistances()
	return d, nil
}

// NumCells returns Nrow*Ncol.
func (d *Definition) NumCells() int { return d.Nrow * d.Ncol }

// CellID returns the linear id of (r,c).
func (d *Definition) CellID(r, c int) int { return r*d.Ncol + c }

// RowCol returns the row and column of a cell id.
func (d *Definition) RowCol(cid int) (int, int) { return cid / d.Ncol, cid % d.Ncol }

// Contains is true when cid lies on the grid.
func (d *Definition) Contains(cid int) bool { return cid >= 0 && cid < d.Nrow*d.Ncol }

// IsEdge is true for cells on the raster border.
func (d *Definition) IsEdge(cid int) bool {
	r, c := d.RowCol(cid)
	return r == 0 || c == 0 || r == d.Nrow-1 || c == d.Ncol-1
}

// Neighbour returns the cell in direction dir, false when it falls off the grid.
func (d *Definition) Neighbour(cid int, dir Dir) (int, bool) {
	if dir >= 8 {
		return -1, false
	}
	r, c := d.RowCol(cid)
	r += drow[dir]
	c += dcol[dir]
	if r < 0 || c < 0 || r >= d.Nrow || c >= d.Ncol {
		return -1, false
	}
	return r*d.Ncol + c, true
}

// Neighbours returns the in-bounds 8-neighbourhood of cid in scan order N..NW.
func (d *Definition) Neighbours(cid int) []Neighbour {
	o := make([]Neighbour, 0, 8)
	for dir := N; dir <= NW; dir++ {
		if nid, ok := d.Neighbour(cid, dir); ok {
			o = append(o, Neighbour{Cid: nid, Dir: dir, W: d.Distance(cid, dir)})
		}
	}
	return o
}

// Distance returns the distance weight from cid towards dir: 1 and √2 on
// projected grids, great-circle metres between cell centres when LatLon.
func (d *Definition) Distance(cid int, dir Dir) float64 {
	if dir >= 8 {
		return 0.
	}
	if d.dw == nil {
		d.buildDistances()
	}
	if !d.LatLon {
		return d.dw[dir]
	}
	return d.dw[8*(cid/d.Ncol)+int(dir)]
}

func (d *Definition) buildDistances() {
	if !d.LatLon {
		d.dw = make([]float64, 8)
		for dir := range 8 {
			if Dir(dir).IsDiagonal() {
				d.dw[dir] = math.Sqrt2
			} else {
				d.dw[dir] = 1.
			}
		}
		return
	}
	xres, _ := d.Transform.Res()
	d.dw = make([]float64, 8*d.Nrow)
	for r := range d.Nrow {
		_, lat0 := d.Transform.XY(float64(r)+.5, .5)
		for dir := range 8 {
			_, lat1 := d.Transform.XY(float64(r+drow[dir])+.5, .5)
			d.dw[8*r+dir] = haversine(lat0, 0., lat1, float64(dcol[dir])*xres)
		}
	}
}

// CellCentre returns the transformed coordinate of the centre of cid.
func (d *Definition) CellCentre(cid int) (float64, float64) {
	r, c := d.RowCol(cid)
	return d.Transform.XY(float64(r)+.5, float64(c)+.5)
}

// CellArea returns the area of cid: units² of the transform, or m² when LatLon.
func (d *Definition) CellArea(cid int) float64 {
	xres, yres := d.Transform.Res()
	if !d.LatLon {
		return math.Abs(xres * yres)
	}
	_, lat := d.CellCentre(cid)
	return DegreeMetresX(lat) * math.Abs(xres) * DegreeMetresY(lat) * math.Abs(yres)
}

// DegreeMetresY returns the length of a degree of latitude [m] at lat.
func DegreeMetresY(lat float64) float64 {
	rl := lat * math.Pi / 180.
	return 111132.92 - 559.82*math.Cos(2.*rl) + 1.175*math.Cos(4.*rl) - 0.0023*math.Cos(6.*rl)
}

// DegreeMetresX returns the length of a degree of longitude [m] at lat.
func DegreeMetresX(lat float64) float64 {
	rl := lat * math.Pi / 180.
	return 111412.84*math.Cos(rl) - 93.5*math.Cos(3.*rl) + 0.118*math.Cos(5.*rl)
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	p1, p2 := lat1*math.Pi/180., lat2*math.Pi/180.
	dp, dl := p2-p1, (lon2-lon1)*math.Pi/180.
	a := math.Sin(dp/2.)*math.Sin(dp/2.) + math.Cos(p1)*math.Cos(p2)*math.Sin(dl/2.)*math.Sin(dl/2.)
	return 2. * earthRadius * math.Asin(math.Min(1., math.Sqrt(a)))
}
