package flwdir

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a FlwDirRaster.
type Summary struct {
	Nrow      int     `yaml:"nrow" json:"nrow"`
	Ncol      int     `yaml:"ncol" json:"ncol"`
	Valid     int     `yaml:"valid" json:"valid"`
	Pits      int     `yaml:"pits" json:"pits"`
	Raised    int     `yaml:"raised" json:"raised"`
	MeanDepth float64 `yaml:"mean_depth" json:"mean_depth"` // over raised cells
	StdDepth  float64 `yaml:"std_depth" json:"std_depth"`
	MaxDepth  float64 `yaml:"max_depth" json:"max_depth"`
	MaxOrder  int     `yaml:"max_order" json:"max_order"`
	MaxUparea float64 `yaml:"max_uparea" json:"max_uparea"`
	MainStem  int     `yaml:"main_stem" json:"main_stem"`       // cells, see MainStem
	Longest   int     `yaml:"longest_path" json:"longest_path"` // cells on the longest flow path
}

// Summary counts cells and pits, fill depth statistics, the largest stream
// order and contributing area, and flow path lengths.
func (r *FlwDirRaster) Summary() (Summary, error) {
	s := Summary{Nrow: r.def.Nrow, Ncol: r.def.Ncol, Raised: r.raised}
	t, err := r.Network()
	if err != nil {
		return s, err
	}
	s.Valid, s.Pits = t.NumValid(), len(t.Pits())

	if r.zfill != nil {
		dz := make([]float64, 0, r.raised)
		for cid, z := range r.zfill {
			if t.IsValid(cid) && z > r.dem[cid] {
				dz = append(dz, z-r.dem[cid])
			}
		}
		switch len(dz) {
		case 0:
		case 1:
			s.MeanDepth, s.MaxDepth = dz[0], dz[0]
		default:
			s.MeanDepth, s.StdDepth = stat.MeanStdDev(dz, nil)
			s.MaxDepth = floats.Max(dz)
		}
	}

	ord, err := r.StreamOrder()
	if err != nil {
		return s, err
	}
	for _, o := range ord {
		s.MaxOrder = max(s.MaxOrder, o)
	}
	upa, err := r.UpstreamArea()
	if err != nil {
		return s, err
	}
	s.MaxUparea = floats.Max(upa)

	stem, err := r.MainStem()
	if err != nil {
		return s, err
	}
	s.MainStem, s.Longest = len(stem), len(t.Tree())
	return s, nil
}
