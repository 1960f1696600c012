package grid

// Dir is the internal flow direction code: the index of one of the eight
// neighbours, scanned clockwise from north, or one of the two sentinels.
type Dir uint8

const (
	N Dir = iota
	NE
	E
	SE
	S
	SW
	W
	NW
)

const (
	NoFlow Dir = 8   // pit or outlet
	Nodata Dir = 255 // cell not part of the flow network
)

// row/column offsets, indexed by Dir
var (
	drow = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
	dcol = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

var dirNames = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// IsFlow is true when d points at a neighbour.
func (d Dir) IsFlow() bool { return d < 8 }

// IsDiagonal is true for NE, SE, SW and NW.
func (d Dir) IsDiagonal() bool { return d < 8 && d%2 == 1 }

// Offset returns the row and column step of d.
func (d Dir) Offset() (int, int) {
	if d >= 8 {
		return 0, 0
	}
	return drow[d], dcol[d]
}

// Opposite returns the direction pointing back.
func (d Dir) Opposite() Dir {
	if d >= 8 {
		return d
	}
	return (d + 4) % 8
}

func (d Dir) String() string {
	switch {
	case d < 8:
		return dirNames[d]
	case d == NoFlow:
		return "pit"
	default:
		return "nodata"
	}
}
