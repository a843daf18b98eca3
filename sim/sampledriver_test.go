package sim

import (
	"context"
	"testing"

	"github.com/isladuncan/ndnsim/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDriver_RunSequential(t *testing.T) {
	tunables := ResolveTunables(config.Default())
	tunables.Samples = 3
	tunables.RunTime = 50 * tunables.RunTime / 1000 // short run for test speed

	driver := NewSampleDriver(twoNodeDescriptor(), tunables, NewSimulationKey(42))
	require.NoError(t, driver.Run(context.Background()))

	hd, rt := driver.Metrics.SampleBoundaries()
	assert.Len(t, hd, 3)
	assert.Len(t, rt, 3)
}

func TestSampleDriver_RunParallel_IsReproducible(t *testing.T) {
	tunables := ResolveTunables(config.Default())
	tunables.Samples = 4
	tunables.RunTime = 50 * tunables.RunTime / 1000
	tunables.ParallelSamples = true

	driver1 := NewSampleDriver(twoNodeDescriptor(), tunables, NewSimulationKey(7))
	require.NoError(t, driver1.Run(context.Background()))

	driver2 := NewSampleDriver(twoNodeDescriptor(), tunables, NewSimulationKey(7))
	require.NoError(t, driver2.Run(context.Background()))

	assert.Equal(t, driver1.Metrics.HitDistance, driver2.Metrics.HitDistance)
	assert.Equal(t, driver1.Metrics.ReturnTimes, driver2.Metrics.ReturnTimes)
}
