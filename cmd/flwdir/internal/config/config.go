// Package config reads flwdir job files.
//
// A job file is YAML:
//
//	gdef: dem.gdef          # grid definition
//	dem: dem.bil            # float32 elevations
//	out: out/dem.           # output prefix
//	nodata: -9999
//	latlon: false
//	outlets: edge           # edge | min
//	max_depth: 0            # 0 is unbounded
//	idxs: [1024]            # additional outlet cells
//	convention: d8          # d8 | ldd
//	min_order: 2
//	format: yaml            # yaml | json
//	cache_dir: .flwdir      # optional result cache
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Job is a complete pipeline run.
type Job struct {
	GDEF       string  `yaml:"gdef"`
	DEM        string  `yaml:"dem"`
	Out        string  `yaml:"out"`
	Nodata     float64 `yaml:"nodata"`
	LatLon     bool    `yaml:"latlon"`
	Outlets    string  `yaml:"outlets"`
	MaxDepth   float64 `yaml:"max_depth"`
	Idxs       []int   `yaml:"idxs,omitempty"`
	Convention string  `yaml:"convention"`
	MinOrder   int     `yaml:"min_order"`
	Format     string  `yaml:"format"`
	CacheDir   string  `yaml:"cache_dir,omitempty"`
}

// Default returns a job with every optional field set.
func Default() *Job {
	return &Job{
		Nodata:     -9999.,
		Outlets:    "edge",
		Convention: "d8",
		MinOrder:   1,
		Format:     "yaml",
	}
}

// Load reads a job file. Relative paths are resolved against the file's
// directory.
func Load(fp string) (*Job, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	j, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fp, err)
	}
	dir := filepath.Dir(fp)
	for _, p := range []*string{&j.GDEF, &j.DEM, &j.Out, &j.CacheDir} {
		if *p == "" || filepath.IsAbs(*p) {
			continue
		}
		trail := strings.HasSuffix(*p, "/") // out may be a bare directory prefix
		*p = filepath.Join(dir, *p)
		if trail {
			*p += "/"
		}
	}
	return j, nil
}

// Parse decodes and validates a job over the defaults.
func Parse(b []byte) (*Job, error) {
	j := Default()
	if err := yaml.Unmarshal(b, j); err != nil {
		return nil, fmt.Errorf("parse job: %w", err)
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// Validate checks required fields and enumerations.
func (j *Job) Validate() error {
	switch {
	case j.GDEF == "":
		return fmt.Errorf("job: gdef is required")
	case j.DEM == "":
		return fmt.Errorf("job: dem is required")
	case j.Out == "":
		return fmt.Errorf("job: out is required")
	}
	switch j.Outlets {
	case "edge", "min":
	default:
		return fmt.Errorf("job: unknown outlets %q (want edge or min)", j.Outlets)
	}
	switch j.Convention {
	case "d8", "ldd":
	default:
		return fmt.Errorf("job: unknown convention %q (want d8 or ldd)", j.Convention)
	}
	switch j.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("job: unknown format %q (want yaml or json)", j.Format)
	}
	if math.IsNaN(j.MaxDepth) || j.MaxDepth < 0. {
		return fmt.Errorf("job: max_depth must be non-negative, got %v", j.MaxDepth)
	}
	if j.MinOrder < 1 {
		return fmt.Errorf("job: min_order must be at least 1, got %d", j.MinOrder)
	}
	return nil
}
