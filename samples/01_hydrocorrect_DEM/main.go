package main

/*
	hydrologically correcting a digital elevation model

	this example fills the depressions of a raw DEM, assigns D8 flow directions
	and reports the contributing area and stream order at an outlet cell,
	snapped onto the nearest downstream stream cell
*/

import (
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/maseology/flwdir"
	"github.com/maseology/flwdir/grid"
)

const (
	gdeffp = "dem.gdef"
	demfp  = "dem.bil"
	outdir = "out/"
	cid0   = 12778 // outlet cell id
	upa0   = 1e6   // stream threshold [m²]
)

func main() {
	tt := time.Now()
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalln(err)
	}
	defer l.Sync()

	gd, err := grid.ReadGDEF(gdeffp)
	if err != nil {
		log.Fatalln(err)
	}
	if !gd.Contains(cid0) {
		log.Fatalf("outlet cell %d outside the %dx%d grid in %s", cid0, gd.Nrow, gd.Ncol, gdeffp)
	}
	z, err := grid.ReadFloats32(demfp, gd.NumCells())
	if err != nil {
		log.Fatalln(err)
	}

	o := flwdir.DefaultOptions()
	o.Transform, o.LatLon, o.Logger = gd.Transform, gd.LatLon, l.Sugar()
	fd, err := flwdir.FromDEM(z, gd.Nrow, gd.Ncol, o)
	if err != nil {
		log.Fatalln(err)
	}

	cid, err := fd.Snap(cid0, upa0)
	if err != nil {
		log.Fatalln(err)
	}
	catch, err := fd.Catchment(cid)
	if err != nil {
		log.Fatalln(err)
	}

	upa, err := fd.UpstreamArea()
	if err != nil {
		log.Fatalln(err)
	}
	ord, err := fd.StreamOrder()
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf(" cell %d (snapped from %d): %d cells, contributing area %.3f km², Strahler order %d\n", cid, cid0, len(catch), upa[cid]/1e6, ord[cid])

	if err := fd.WriteCheck(outdir+"dem.", "d8"); err != nil {
		log.Fatalln(err)
	}
	fmt.Printf(" complete %v\n", time.Since(tt))
}
