package sim

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Metrics is the run-global aggregate of every sample's observations. It
// is never a package global: a fresh *Metrics is threaded by pointer
// through the Generator, every Channel and every Node, exactly as a
// single aggregate is threaded through a run's lifetime rather than
// scattered across ad-hoc counters.
type Metrics struct {
	mu sync.Mutex

	// HitDistance[i] is the number of forwarding hops Interest id i
	// traversed before being satisfied. Indexed by Interest.ID, grown by
	// NewInterestID as interests are generated.
	HitDistance []int

	// ReturnTimes holds the round-trip completion time, in seconds, of
	// every Interest that reached a user endpoint.
	ReturnTimes []float64

	// CacheStatus counts, per name, how many ContentStores across the
	// network currently hold an entry for that name (incremented on
	// insert, decremented on eviction).
	CacheStatus map[Name]int

	// CacheHitTimes records the simulated time of every cache hit, for a
	// hits-over-time timeline.
	CacheHitTimes []time.Duration

	hdSampleStart []int
	rtSampleStart []int

	fibMisses      int
	totalCacheHits int
	totalRequests  int
}

// NewMetrics creates an empty Metrics aggregate.
func NewMetrics() *Metrics {
	return &Metrics{
		CacheStatus: make(map[Name]int),
	}
}

// NewInterestID reserves the next Interest id and grows HitDistance with
// a zero entry for it, mirroring the reference generator's
// "append a zero before sending" ordering.
func (m *Metrics) NewInterestID() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uint64(len(m.HitDistance))
	m.HitDistance = append(m.HitDistance, 0)
	return id
}

// RecordHop increments the hop count for interestID, called once per
// node an Interest passes through.
func (m *Metrics) RecordHop(interestID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if interestID >= uint64(len(m.HitDistance)) {
		logrus.WithField("interest_id", interestID).Warn("metrics: hop recorded for unknown interest id")
		return
	}
	m.HitDistance[interestID]++
}

// RecordReturnTime appends a completed round-trip time, in seconds.
func (m *Metrics) RecordReturnTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReturnTimes = append(m.ReturnTimes, seconds)
}

// RecordCacheHit appends the current clock to the cache-hit timeline.
func (m *Metrics) RecordCacheHit(now time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHitTimes = append(m.CacheHitTimes, now)
}

// RecordCacheInsert increments the cache-status count for name.
func (m *Metrics) RecordCacheInsert(name Name) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheStatus[name]++
}

// RecordCacheEvict decrements the cache-status count for name.
func (m *Metrics) RecordCacheEvict(name Name) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheStatus[name]--
}

// RecordFIBMiss logs a fatal-configuration anomaly: an Interest reached a
// node with no FIB route for its name. This should never happen once
// World.validateRoutes has passed, so it is logged at warn level rather
// than aborting the run.
func (m *Metrics) RecordFIBMiss(nodeID int, name Name) {
	m.mu.Lock()
	m.fibMisses++
	m.mu.Unlock()
	logrus.WithFields(logrus.Fields{"node": nodeID, "name": name}).Warn("fib: no route for interest")
}

// StartSample records the current length of HitDistance/ReturnTimes as
// the boundary before a new sample begins, so per-sample slices can be
// recovered later for the stats package's per-sample variance
// computation.
func (m *Metrics) StartSample() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hdSampleStart = append(m.hdSampleStart, len(m.HitDistance))
	m.rtSampleStart = append(m.rtSampleStart, len(m.ReturnTimes))
}

// ResetCacheStatus zeroes the per-name cache-status counters between
// samples, without discarding the HitDistance/ReturnTimes history that
// stats.Summarize aggregates across every sample.
func (m *Metrics) ResetCacheStatus() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.CacheStatus {
		delete(m.CacheStatus, k)
	}
}

// SampleBoundaries returns the recorded start offsets into HitDistance
// and ReturnTimes for each sample, used to slice per-sample views of the
// accumulated history.
func (m *Metrics) SampleBoundaries() (hd []int, rt []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.hdSampleStart...), append([]int(nil), m.rtSampleStart...)
}

// FIBMisses returns the number of Interests that reached a node lacking a
// FIB route for their name.
func (m *Metrics) FIBMisses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fibMisses
}

// RecordSampleTotals folds a completed sample's per-node cache hit and
// request counters into the run-global totals used for the overall cache
// hit ratio.
func (m *Metrics) RecordSampleTotals(cacheHits, totalRequests int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalCacheHits += cacheHits
	m.totalRequests += totalRequests
}

// CacheHitRatio returns the run-global fraction of requests satisfied
// from a Content Store, across every node and every sample.
func (m *Metrics) CacheHitRatio() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.totalRequests == 0 {
		return 0
	}
	return float64(m.totalCacheHits) / float64(m.totalRequests)
}

// Merge folds a sample-scoped Metrics (built by SampleDriver so each
// sample can run against an isolated World without racing on shared
// state) into this run-global aggregate, preserving a sample boundary.
// CacheStatus is transient per-sample working state, so the merged value
// simply takes the most recently merged sample's counts rather than
// summing across samples.
func (m *Metrics) Merge(other *Metrics) {
	other.mu.Lock()
	hd := append([]int(nil), other.HitDistance...)
	rt := append([]float64(nil), other.ReturnTimes...)
	cht := append([]time.Duration(nil), other.CacheHitTimes...)
	cacheStatus := make(map[Name]int, len(other.CacheStatus))
	for k, v := range other.CacheStatus {
		cacheStatus[k] = v
	}
	fibMisses := other.fibMisses
	cacheHits := other.totalCacheHits
	totalRequests := other.totalRequests
	other.mu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.hdSampleStart = append(m.hdSampleStart, len(m.HitDistance))
	m.rtSampleStart = append(m.rtSampleStart, len(m.ReturnTimes))
	m.HitDistance = append(m.HitDistance, hd...)
	m.ReturnTimes = append(m.ReturnTimes, rt...)
	m.CacheHitTimes = append(m.CacheHitTimes, cht...)
	m.CacheStatus = cacheStatus
	m.fibMisses += fibMisses
	m.totalCacheHits += cacheHits
	m.totalRequests += totalRequests
}
