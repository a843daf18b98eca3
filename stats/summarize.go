// Package stats turns a run's raw sim.Metrics into a Report: means and
// variances over every observation, and over each sample's own mean, the
// way the reference simulation's final histogram step summarizes many
// independent runs.
package stats

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/isladuncan/ndnsim/sim"
	"gonum.org/v1/gonum/stat"
)

// histogramBuckets are the hit-distance values the reference histogram
// reports as percentages; values outside this range aren't bucketed.
const histogramBuckets = 5

// Report is the summarized output of a completed run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Config      string
	Samples     int

	MeanHitDistance     float64
	VarianceHitDistance float64
	MeanReturnTime      float64
	VarianceReturnTime  float64

	// PerSampleHitDistanceMeans and PerSampleReturnTimeMeans hold one
	// value per sample that produced at least one observation: the mean
	// observation within that sample alone. Their variance is what the
	// reference histogram actually plots ("average hit distance in a
	// run"). Samples with no deliveries are skipped, not zero-filled.
	PerSampleHitDistanceMeans []float64
	PerSampleReturnTimeMeans  []float64

	VarianceOfSampleHitDistanceMeans float64
	VarianceOfSampleReturnTimeMeans  float64

	// HitDistanceHistogramPct[i] is the percentage of all recorded hit
	// distances equal to i+1 (i.e. index 0 holds distance 1, index 4
	// holds distance 5).
	HitDistanceHistogramPct [histogramBuckets]float64

	CacheHitRatio float64
	FIBMisses     int
}

// Summarize computes a Report from a completed run's Metrics. generatedAt
// and config are supplied by the caller rather than read from time.Now()
// or reconstructed here, so the summarization itself stays pure.
func Summarize(m *sim.Metrics, generatedAt time.Time, config string) *Report {
	r := &Report{
		RunID:         uuid.NewString(),
		GeneratedAt:   generatedAt,
		Config:        config,
		CacheHitRatio: m.CacheHitRatio(),
		FIBMisses:     m.FIBMisses(),
	}

	hd := intsToFloats(m.HitDistance)
	if len(hd) > 0 {
		r.MeanHitDistance, r.VarianceHitDistance = stat.MeanVariance(hd, nil)
	}
	if len(m.ReturnTimes) > 0 {
		r.MeanReturnTime, r.VarianceReturnTime = stat.MeanVariance(m.ReturnTimes, nil)
	}
	r.HitDistanceHistogramPct = histogramPercentages(m.HitDistance)

	hdStarts, rtStarts := m.SampleBoundaries()
	r.Samples = len(hdStarts)

	r.PerSampleHitDistanceMeans = perSampleMeans(hd, hdStarts, "hit distance")
	r.PerSampleReturnTimeMeans = perSampleMeans(m.ReturnTimes, rtStarts, "return time")

	if len(r.PerSampleHitDistanceMeans) > 1 {
		r.VarianceOfSampleHitDistanceMeans = stat.Variance(r.PerSampleHitDistanceMeans, nil)
	}
	if len(r.PerSampleReturnTimeMeans) > 1 {
		r.VarianceOfSampleReturnTimeMeans = stat.Variance(r.PerSampleReturnTimeMeans, nil)
	}

	return r
}

// perSampleMeans slices values at each recorded sample boundary and
// returns one mean per non-empty sample. A sample with no observations
// (start >= end) produced no deliveries at all; it is skipped rather than
// folded in as a false zero, and a warning names which sample index was
// dropped.
func perSampleMeans(values []float64, starts []int, label string) []float64 {
	if len(starts) == 0 {
		return nil
	}
	means := make([]float64, 0, len(starts))
	for i, start := range starts {
		end := len(values)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if end > len(values) {
			end = len(values)
		}
		if start >= end {
			logrus.WithFields(logrus.Fields{"sample": i, "metric": label}).Warn("stats: sample produced no deliveries, skipping in variance computation")
			continue
		}
		means = append(means, stat.Mean(values[start:end], nil))
	}
	return means
}

// histogramPercentages reports, for each hit distance 1..histogramBuckets,
// the percentage of all recorded hit distances equal to that value.
func histogramPercentages(hd []int) [histogramBuckets]float64 {
	var counts [histogramBuckets]int
	for _, v := range hd {
		if v >= 1 && v <= histogramBuckets {
			counts[v-1]++
		}
	}
	var pct [histogramBuckets]float64
	if len(hd) == 0 {
		return pct
	}
	for i, c := range counts {
		pct[i] = 100 * float64(c) / float64(len(hd))
	}
	return pct
}

func intsToFloats(ints []int) []float64 {
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}
	return out
}

// CSVRow renders the report as a single CSV line: run id, date,
// configuration, sample count, then the summary statistics (including the
// hit-distance histogram percentages) in a fixed column order.
func (r *Report) CSVRow() string {
	fields := []string{
		r.RunID,
		r.GeneratedAt.UTC().Format(time.RFC3339),
		strconv.Quote(r.Config),
		strconv.Itoa(r.Samples),
		strconv.FormatFloat(r.MeanHitDistance, 'f', 6, 64),
		strconv.FormatFloat(r.VarianceHitDistance, 'f', 6, 64),
		strconv.FormatFloat(r.MeanReturnTime, 'f', 6, 64),
		strconv.FormatFloat(r.VarianceReturnTime, 'f', 6, 64),
		strconv.FormatFloat(r.VarianceOfSampleHitDistanceMeans, 'f', 6, 64),
		strconv.FormatFloat(r.VarianceOfSampleReturnTimeMeans, 'f', 6, 64),
		strconv.FormatFloat(r.CacheHitRatio, 'f', 6, 64),
		strconv.Itoa(r.FIBMisses),
	}
	for _, pct := range r.HitDistanceHistogramPct {
		fields = append(fields, strconv.FormatFloat(pct, 'f', 6, 64))
	}

	row := fields[0]
	for _, f := range fields[1:] {
		row += "," + f
	}
	return row
}

// Print writes a human-readable summary to stdout, in the style of the
// reference simulation's end-of-run logging statements.
func (r *Report) Print() {
	fmt.Printf("run %s (%d samples, generated %s)\n", r.RunID, r.Samples, r.GeneratedAt.UTC().Format(time.RFC3339))
	if r.Config != "" {
		fmt.Printf("  config:             %s\n", r.Config)
	}
	fmt.Printf("  cache hit ratio:    %.4f\n", r.CacheHitRatio)
	fmt.Printf("  mean hit distance:  %.4f (var %.4f)\n", r.MeanHitDistance, r.VarianceHitDistance)
	fmt.Printf("  mean return time:   %s (var %.6f)\n", time.Duration(r.MeanReturnTime*float64(time.Second)), r.VarianceReturnTime)
	fmt.Print("  hit distance histogram:")
	for i, pct := range r.HitDistanceHistogramPct {
		fmt.Printf(" [%d]=%.1f%%", i+1, pct)
	}
	fmt.Println()
	if r.FIBMisses > 0 {
		fmt.Printf("  fib misses:         %d\n", r.FIBMisses)
	}
}
