package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run. Two runs
// with the same SimulationKey, the same World and the same Tunables MUST
// produce bit-for-bit identical Metrics.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Subsystem names partition the RNG stream so that unrelated sources of
// randomness (the generator's arrival process vs. a channel's delay jitter
// vs. a content store's insertion coin flip) never perturb each other.
const (
	SubsystemGenerator = "generator"
	SubsystemChannel    = "channel"
	SubsystemCache      = "cache"
)

// SubsystemSample returns the subsystem name for sample index s, so that
// every independent sample in a SampleDriver run draws from its own
// isolated stream while remaining deterministic given the master seed.
func SubsystemSample(s int) string {
	return fmt.Sprintf("sample_%d", s)
}

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem and per sample.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe to call ForSubsystem concurrently for the
// same name from multiple goroutines. SampleDriver gives each sample its
// own PartitionedRNG via ForSample, which reads only the key and never
// touches the subsystem cache, so concurrent samples share no RNG state.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// ForSample returns an independent PartitionedRNG scoped to sample index s,
// derived from this RNG's key so that repeated runs of the same sample
// index, across process invocations, draw identical sequences.
func (p *PartitionedRNG) ForSample(s int) *PartitionedRNG {
	derivedSeed := int64(p.key) ^ fnv1a64(SubsystemSample(s))
	return NewPartitionedRNG(SimulationKey(derivedSeed))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
