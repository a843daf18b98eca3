package sim

import (
	"context"
	"fmt"

	"github.com/isladuncan/ndnsim/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SampleDriver runs Tunables.Samples independent closed-world samples and
// folds their observations into one run-global Metrics aggregate. Each
// sample gets its own freshly-built World (so a parallel run never shares
// mutable Content Store state across goroutines) and its own region of
// the master PartitionedRNG, keeping every sample reproducible given the
// same SimulationKey regardless of how many samples run concurrently.
type SampleDriver struct {
	Descriptor config.Descriptor
	Tunables   Tunables
	Metrics    *Metrics

	masterRNG *PartitionedRNG
}

// NewSampleDriver creates a SampleDriver for the given topology, tunables
// and master simulation key.
func NewSampleDriver(desc config.Descriptor, tunables Tunables, key SimulationKey) *SampleDriver {
	return &SampleDriver{
		Descriptor: desc,
		Tunables:   tunables,
		Metrics:    NewMetrics(),
		masterRNG:  NewPartitionedRNG(key),
	}
}

// Run executes every sample, sequentially unless Tunables.ParallelSamples
// is set, in which case samples run concurrently via errgroup and their
// per-sample Metrics are merged in sample-index order once all complete.
func (d *SampleDriver) Run(ctx context.Context) error {
	if !d.Tunables.ParallelSamples {
		for i := 0; i < d.Tunables.Samples; i++ {
			sampleMetrics, err := d.runSample(i)
			if err != nil {
				return err
			}
			d.Metrics.Merge(sampleMetrics)
		}
		return nil
	}

	results := make([]*Metrics, d.Tunables.Samples)
	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < d.Tunables.Samples; i++ {
		i := i
		g.Go(func() error {
			sampleMetrics, err := d.runSample(i)
			if err != nil {
				return err
			}
			results[i] = sampleMetrics
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, sampleMetrics := range results {
		d.Metrics.Merge(sampleMetrics)
	}
	return nil
}

// runSample builds an isolated World, drives it for Tunables.RunTime, and
// returns a Metrics scoped to that sample alone. The first sample starts
// with each node's seed content; later samples start with empty Content
// Stores unless Tunables.RepopulateCacheOnReset is set.
func (d *SampleDriver) runSample(index int) (*Metrics, error) {
	sampleMetrics := NewMetrics()
	world, err := NewWorld(d.Descriptor, d.Tunables, sampleMetrics)
	if err != nil {
		return nil, fmt.Errorf("sample %d: %w", index, err)
	}
	if index > 0 && !d.Tunables.RepopulateCacheOnReset {
		for _, n := range world.Nodes() {
			n.CS.Reset()
		}
	}

	rng := d.masterRNG.ForSample(index)
	simr := NewSimulator(world, rng, d.Tunables.RunTime)
	StartGenerator(simr)
	simr.Run()

	cacheHits, totalRequests := 0, 0
	for _, n := range world.Nodes() {
		cacheHits += n.CacheHits
		totalRequests += n.TotalRequests
	}
	sampleMetrics.RecordSampleTotals(cacheHits, totalRequests)

	logrus.WithFields(logrus.Fields{
		"sample":   index,
		"requests": totalRequests,
	}).Debug("sample complete")

	return sampleMetrics, nil
}
