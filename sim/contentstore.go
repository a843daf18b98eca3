package sim

import (
	"math/rand"
	"time"
)

// CacheEntry is one Data packet held by a ContentStore, newest-first.
type CacheEntry struct {
	Data *Data
}

// ContentStore is a node's CS: a capacity-bounded cache of Data packets,
// admitted probabilistically and evicted by a popularity x freshness score
// once the capacity is exceeded.
type ContentStore struct {
	entries  []*Data
	capacity int

	nodeID int
}

// NewContentStore creates a ContentStore with the given capacity, seeded
// with an optional starting content list (used by network descriptors that
// pre-populate a node's cache).
func NewContentStore(nodeID, capacity int, seed []*Data) *ContentStore {
	entries := make([]*Data, len(seed))
	copy(entries, seed)
	return &ContentStore{entries: entries, capacity: capacity, nodeID: nodeID}
}

// Search reports whether an unexpired Data packet matching name is held.
func (cs *ContentStore) Search(name Name, now time.Duration) bool {
	for _, d := range cs.entries {
		if d.Name.Equal(name) && d.ExpireTime > now {
			return true
		}
	}
	return false
}

// evictExpired drops entries whose ExpireTime has already passed.
func (cs *ContentStore) evictExpired(now time.Duration) {
	live := cs.entries[:0]
	for _, d := range cs.entries {
		if d.ExpireTime >= now {
			live = append(live, d)
		}
	}
	cs.entries = live
}

// Cache evicts expired entries, then admits data with probability admitProb
// (a Bernoulli draw from rng). If admitted and the store is now over
// capacity, the lowest-scoring entry is evicted; ties favor the
// later-iterated entry (closer to the back of the newest-first list),
// matching the original cache policy's linear scan with a <= comparison.
// popularity supplies the per-name request count used in the score.
func (cs *ContentStore) Cache(data *Data, now time.Duration, admitProb float64, rng *rand.Rand, popularity map[Name]int) (cached bool, evictedName Name, evicted bool) {
	cs.evictExpired(now)

	if rng.Float64() >= admitProb {
		return false, "", false
	}

	cs.entries = append([]*Data{data}, cs.entries...)

	if len(cs.entries) <= cs.capacity {
		return true, "", false
	}

	minScore := cs.score(cs.entries[0], now, popularity)
	minIndex := 0
	for i, d := range cs.entries {
		score := cs.score(d, now, popularity)
		if score <= minScore {
			minScore = score
			minIndex = i
		}
	}

	evictedName = cs.entries[minIndex].Name
	cs.entries = append(cs.entries[:minIndex], cs.entries[minIndex+1:]...)
	return true, evictedName, true
}

func (cs *ContentStore) score(d *Data, now time.Duration, popularity map[Name]int) float64 {
	pop, ok := popularity[d.Name]
	if !ok {
		return 0
	}
	remaining := (d.ExpireTime - now).Seconds()
	return float64(pop) * remaining
}

// SendData builds a fresh Data packet for name, stamped with the current
// clock, in response to an Interest — it never replays the cached entry
// directly, since the cached copy's SendTime would misreport latency.
func (cs *ContentStore) SendData(interest *Interest, now time.Duration, hiTTL, miTTL time.Duration, sizeBits int) *Data {
	return NewData(interest.Name, now, hiTTL, miTTL, sizeBits)
}

// Len reports the number of entries currently held, for tests and metrics.
func (cs *ContentStore) Len() int {
	return len(cs.entries)
}

// Reset empties the store, used between independent samples.
func (cs *ContentStore) Reset() {
	cs.entries = cs.entries[:0]
}
