package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/maseology/flwdir/strahler"
)

// streamRecord is the exported form of a stream segment.
type streamRecord struct {
	Order  int          `yaml:"order" json:"order"`
	Cids   []int        `yaml:"cids" json:"cids"`
	Coords [][2]float64 `yaml:"coords" json:"coords"`
}

func records(seq iter.Seq[strahler.Segment]) []streamRecord {
	o := []streamRecord{}
	for s := range seq {
		r := streamRecord{Order: s.Order, Cids: s.Cids, Coords: make([][2]float64, len(s.Points))}
		for i, p := range s.Points {
			r.Coords[i] = [2]float64{p.X, p.Y}
		}
		o = append(o, r)
	}
	return o
}

// output writes result as yaml or json to fp, or to w when fp is empty.
func output(w io.Writer, fp, format string, result any) error {
	if fp != "" {
		f, err := os.Create(fp)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml", "":
		b, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unsupported output format: %s", format)
}
