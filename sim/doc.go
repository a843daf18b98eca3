// Package sim provides the core discrete-event simulation engine for the
// NDN overlay simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - name.go: hierarchical NDN names and prefix/exact matching
//   - packet.go: Interest and Data wire-level structs
//   - event.go: the min-heap event queue driving the simulator clock
//   - simulator.go: the event loop itself
//   - rng.go: deterministic, subsystem-partitioned randomness
//   - contentstore.go, pit.go, fib.go: the three forwarding tables a Node owns
//   - channel.go: propagation+transmission delay and packet delivery
//   - node.go: the per-node forwarding rule gluing CS/PIT/FIB together
//   - generator.go: the Poisson Interest arrival process
//   - world.go: the arena owning nodes and channels by integer id
//   - metrics.go: the run-global observation aggregate
//   - sampledriver.go: runs many independent samples and merges their metrics
//
// # Architecture
//
// A SampleDriver builds one World per sample from a config.Descriptor, so
// that concurrently-run samples never share mutable Content Store state.
// Each sample gets its own region of a PartitionedRNG, keyed off a single
// SimulationKey, so results are reproducible given the same seed
// regardless of how many samples run in parallel. Each sample's Metrics
// is merged into one run-global aggregate that the stats package
// summarizes into a Report.
package sim
