package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	j, err := Parse([]byte("gdef: a.gdef\ndem: a.bil\nout: out/a.\n"))
	require.NoError(t, err)
	assert.Equal(t, -9999., j.Nodata)
	assert.Equal(t, "edge", j.Outlets)
	assert.Equal(t, "d8", j.Convention)
	assert.Equal(t, 1, j.MinOrder)
	assert.Equal(t, "yaml", j.Format)
	assert.Zero(t, j.MaxDepth)
	assert.Empty(t, j.CacheDir)
}

func TestParseFields(t *testing.T) {
	src := `
gdef: a.gdef
dem: a.bil
out: out/a.
nodata: -1
latlon: true
outlets: min
max_depth: 2.5
idxs: [3, 7]
convention: ldd
min_order: 3
format: json
cache_dir: cache
`
	j, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, -1., j.Nodata)
	assert.True(t, j.LatLon)
	assert.Equal(t, "min", j.Outlets)
	assert.Equal(t, 2.5, j.MaxDepth)
	assert.Equal(t, []int{3, 7}, j.Idxs)
	assert.Equal(t, "ldd", j.Convention)
	assert.Equal(t, 3, j.MinOrder)
	assert.Equal(t, "json", j.Format)
	assert.Equal(t, "cache", j.CacheDir)
}

func TestParseInvalid(t *testing.T) {
	base := "gdef: a.gdef\ndem: a.bil\nout: o.\n"
	tests := []struct {
		name string
		src  string
	}{
		{"missing gdef", "dem: a.bil\nout: o.\n"},
		{"missing dem", "gdef: a.gdef\nout: o.\n"},
		{"missing out", "gdef: a.gdef\ndem: a.bil\n"},
		{"outlets", base + "outlets: lowest\n"},
		{"convention", base + "convention: esri\n"},
		{"format", base + "format: csv\n"},
		{"max depth", base + "max_depth: -1\n"},
		{"min order", base + "min_order: 0\n"},
		{"syntax", base + "idxs: [1, \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(fp, []byte("gdef: a.gdef\ndem: /data/a.bil\nout: out/\ncache_dir: cache\n"), 0644))

	j, err := Load(fp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.gdef"), j.GDEF)
	assert.Equal(t, "/data/a.bil", j.DEM)
	assert.Equal(t, filepath.Join(dir, "out")+"/", j.Out)
	assert.Equal(t, filepath.Join(dir, "cache"), j.CacheDir)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
