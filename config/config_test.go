package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTunables_OverridesDefaultsOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("samples: 50\ncache_size: 8\n"), 0o644))

	tu, err := LoadTunables(path)
	require.NoError(t, err)

	assert.Equal(t, 50, tu.Samples)
	assert.Equal(t, 8, tu.CacheSize)
	// Untouched fields keep their default value.
	assert.Equal(t, Default().SignalSpeed, tu.SignalSpeed)
	assert.Equal(t, Default().HiTTLSeconds, tu.HiTTLSeconds)
}

func TestLoadTunables_EmptyPathReturnsDefault(t *testing.T) {
	tu, err := LoadTunables("")
	require.NoError(t, err)
	assert.Equal(t, Default(), tu)
}

func TestLoadTunables_RejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sampels: 50\n"), 0o644))

	_, err := LoadTunables(path)
	assert.Error(t, err)
}

func TestLoadDescriptor_ParsesTopology(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "network.yaml")
	doc := `
nodes:
  - id: 0
    producer_root: uuv1
    catalogue: ["uuv1", "uuv1/health_info"]
    routes: {}
  - id: 1
    producer_root: uuv2
    catalogue: ["uuv2"]
    routes:
      uuv1: 0
edges:
  - id: 0
    a: 0
    b: 1
    length_m: 500
edge_channels:
  - id: 1
    node: 0
    length_m: 10
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	d, err := LoadDescriptor(path)
	require.NoError(t, err)

	assert.Len(t, d.Nodes, 2)
	assert.Equal(t, "uuv2", d.Nodes[1].ProducerRoot)
	assert.Equal(t, 0, d.Nodes[1].Routes["uuv1"])
	require.Len(t, d.Edges, 1)
	assert.Equal(t, 500.0, d.Edges[0].LengthM)
	require.Len(t, d.EdgeChannels, 1)
	assert.Equal(t, 0, d.EdgeChannels[0].Node)
}
