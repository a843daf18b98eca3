package stats

import (
	"testing"
	"time"

	"github.com/isladuncan/ndnsim/sim"
	"github.com/stretchr/testify/assert"
)

func newMetricsWithTwoSamples() *sim.Metrics {
	m := sim.NewMetrics()

	m.StartSample()
	m.NewInterestID()
	m.RecordHop(0)
	m.RecordHop(0)
	m.RecordReturnTime(1.0)
	m.RecordReturnTime(3.0)

	m.StartSample()
	m.NewInterestID()
	m.RecordHop(1)
	m.RecordHop(1)
	m.RecordHop(1)
	m.RecordReturnTime(5.0)

	return m
}

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestSummarize_ComputesOverallMeans(t *testing.T) {
	r := Summarize(newMetricsWithTwoSamples(), fixedTime, "test-config")
	assert.Equal(t, 2, r.Samples)
	assert.InDelta(t, 2.5, r.MeanHitDistance, 1e-9)
	assert.InDelta(t, 3.0, r.MeanReturnTime, 1e-9)
}

func TestSummarize_ComputesPerSampleMeans(t *testing.T) {
	r := Summarize(newMetricsWithTwoSamples(), fixedTime, "test-config")
	assert.Equal(t, []float64{2, 3}, r.PerSampleHitDistanceMeans)
	assert.Equal(t, []float64{2, 5}, r.PerSampleReturnTimeMeans)
}

func TestSummarize_SkipsEmptySampleInPerSampleMeans(t *testing.T) {
	m := sim.NewMetrics()

	m.StartSample()
	m.NewInterestID()
	m.RecordHop(0)
	m.RecordReturnTime(2.0)

	m.StartSample() // no interests at all in this sample

	m.StartSample()
	m.NewInterestID()
	m.RecordHop(1)
	m.RecordHop(1)
	m.RecordReturnTime(4.0)

	r := Summarize(m, fixedTime, "test-config")
	assert.Equal(t, 3, r.Samples)
	assert.Equal(t, []float64{1, 2}, r.PerSampleHitDistanceMeans, "the empty middle sample is skipped, not zero-filled")
	assert.Equal(t, []float64{2, 4}, r.PerSampleReturnTimeMeans)
}

func TestSummarize_ComputesHitDistanceHistogram(t *testing.T) {
	m := sim.NewMetrics()
	m.StartSample()
	for _, hops := range []int{1, 1, 2, 5} {
		id := m.NewInterestID()
		for i := 0; i < hops; i++ {
			m.RecordHop(id)
		}
	}

	r := Summarize(m, fixedTime, "test-config")
	assert.InDelta(t, 50.0, r.HitDistanceHistogramPct[0], 1e-9) // two of four are distance 1
	assert.InDelta(t, 25.0, r.HitDistanceHistogramPct[1], 1e-9) // one is distance 2
	assert.InDelta(t, 0.0, r.HitDistanceHistogramPct[2], 1e-9)
	assert.InDelta(t, 25.0, r.HitDistanceHistogramPct[4], 1e-9) // one is distance 5
}

func TestSummarize_EmptyMetricsIsZeroValued(t *testing.T) {
	r := Summarize(sim.NewMetrics(), fixedTime, "")
	assert.Equal(t, 0, r.Samples)
	assert.Equal(t, 0.0, r.MeanHitDistance)
	assert.Equal(t, 0.0, r.CacheHitRatio)
	assert.Equal(t, [histogramBuckets]float64{}, r.HitDistanceHistogramPct)
}

func TestReport_CSVRowIsWellFormed(t *testing.T) {
	r := Summarize(newMetricsWithTwoSamples(), fixedTime, "nodes=2")
	row := r.CSVRow()
	assert.Contains(t, row, r.RunID)
	assert.Contains(t, row, "2026-01-02T03:04:05Z")
	assert.Contains(t, row, `"nodes=2"`)
	assert.Contains(t, row, "2,")
}
