// Package config loads the two YAML documents that parameterize a run: a
// network Descriptor (nodes, channels, producer catalogues, FIB routes)
// and a Tunables document (the constants named in the simulation's
// design notes). Both are decoded with strict field checking so a typo'd
// key fails the run instead of silently falling back to a zero value.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NodeDescriptor configures one overlay node.
type NodeDescriptor struct {
	ID           int      `yaml:"id"`
	ProducerRoot string   `yaml:"producer_root"`
	Catalogue    []string `yaml:"catalogue"`
	Seed         []string `yaml:"seed"`
	CacheSize    int      `yaml:"cache_size"`
	Central      bool     `yaml:"central"`
	// Routes maps a data name to the outbound channel id this node's FIB
	// forwards requests for that name on.
	Routes map[string]int `yaml:"routes"`
}

// EdgeDescriptor configures a channel connecting two nodes internal to
// the graph.
type EdgeDescriptor struct {
	ID      int     `yaml:"id"`
	A       int     `yaml:"a"`
	B       int     `yaml:"b"`
	LengthM float64 `yaml:"length_m"`
}

// EdgeChannelDescriptor configures a channel connecting one node to the
// network's exterior (the user endpoint, id -1). Interests are injected
// and Data is returned to the user over these channels.
type EdgeChannelDescriptor struct {
	ID      int     `yaml:"id"`
	Node    int     `yaml:"node"`
	LengthM float64 `yaml:"length_m"`
}

// Descriptor is the static topology and content catalogue for a run.
type Descriptor struct {
	Nodes        []NodeDescriptor        `yaml:"nodes"`
	Edges        []EdgeDescriptor        `yaml:"edges"`
	EdgeChannels []EdgeChannelDescriptor `yaml:"edge_channels"`
}

// Tunables is the full set of constants that govern a run's behavior,
// decoded from YAML. After loading, CLI flags in cmd/root.go can override
// Seed, Samples, RunTimeSeconds, CacheSize and ParallelSamples; the other
// fields come only from YAML or the defaults.
type Tunables struct {
	SignalSpeed    float64 `yaml:"signal_speed_m_per_s"`
	Bandwidth      float64 `yaml:"bandwidth_bits_per_s"`
	DelayVarianceS float64 `yaml:"delay_variance_s"`

	HiTTLSeconds float64 `yaml:"hi_ttl_s"`
	MiTTLSeconds float64 `yaml:"mi_ttl_s"`

	CacheSize      int     `yaml:"cache_size"`
	CacheAdmitProb float64 `yaml:"cache_admit_prob"`
	SizeMode       string  `yaml:"size_mode"`

	PCentral                     float64 `yaml:"p_central"`
	GeneratorMeanIntervalSeconds float64 `yaml:"generator_mean_interval_s"`

	RunTimeSeconds         float64 `yaml:"run_time_s"`
	Samples                int     `yaml:"samples"`
	RepopulateCacheOnReset bool    `yaml:"repopulate_cache_on_reset"`
	ParallelSamples        bool    `yaml:"parallel_samples"`

	Seed int64 `yaml:"seed"`
}

// Default returns the Tunables matching the reference simulation's
// hard-coded constants.
func Default() Tunables {
	return Tunables{
		SignalSpeed:                  1500,
		Bandwidth:                    1e8,
		DelayVarianceS:               0.005,
		HiTTLSeconds:                 60,
		MiTTLSeconds:                 40,
		CacheSize:                    5,
		CacheAdmitProb:               1,
		SizeMode:                     "fixed",
		PCentral:                     0.3,
		GeneratorMeanIntervalSeconds: 10,
		RunTimeSeconds:               1000,
		Samples:                      1,
		RepopulateCacheOnReset:       false,
		ParallelSamples:              false,
		Seed:                         1,
	}
}

// LoadDescriptor reads and strictly decodes a network descriptor from
// path.
func LoadDescriptor(path string) (Descriptor, error) {
	var d Descriptor
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("config: reading descriptor %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&d); err != nil {
		return d, fmt.Errorf("config: parsing descriptor %s: %w", path, err)
	}
	return d, nil
}

// LoadTunables reads and strictly decodes a Tunables document from path,
// starting from Default() so an omitted field keeps its default rather
// than zeroing out.
func LoadTunables(path string) (Tunables, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: reading tunables %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&t); err != nil {
		return t, fmt.Errorf("config: parsing tunables %s: %w", path, err)
	}
	return t, nil
}
