package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContentStore_SearchFindsUnexpiredEntry(t *testing.T) {
	cs := NewContentStore(0, 5, []*Data{
		{Name: "uuv1/battery_level", ExpireTime: 100 * time.Second},
	})
	assert.True(t, cs.Search("uuv1/battery_level", 10*time.Second))
	assert.False(t, cs.Search("uuv1/battery_level", 200*time.Second))
	assert.False(t, cs.Search("uuv1/other", 10*time.Second))
}

func TestContentStore_CacheEvictsExpiredBeforeInsert(t *testing.T) {
	cs := NewContentStore(0, 5, []*Data{
		{Name: "stale", ExpireTime: 5 * time.Second},
	})
	rng := rand.New(rand.NewSource(1))
	cs.Cache(&Data{Name: "fresh", ExpireTime: 200 * time.Second}, 10*time.Second, 1.0, rng, map[Name]int{})
	assert.Equal(t, 1, cs.Len())
	assert.False(t, cs.Search("stale", 10*time.Second))
}

func TestContentStore_CacheRespectsAdmitProbability(t *testing.T) {
	cs := NewContentStore(0, 5, nil)
	rng := rand.New(rand.NewSource(1))
	cached, _, _ := cs.Cache(&Data{Name: "n", ExpireTime: time.Second}, 0, 0.0, rng, map[Name]int{})
	assert.False(t, cached)
	assert.Equal(t, 0, cs.Len())
}

func TestContentStore_CacheEvictsLowestScoreOverCapacity(t *testing.T) {
	// The lowest popularity x freshness score is evicted, even if that
	// entry was just inserted: "newcomer" scores 1 x 50s = 50, below
	// "unpopular" (1 x 100s) and "popular" (10 x 100s).
	cs := NewContentStore(0, 2, nil)
	rng := rand.New(rand.NewSource(1))
	popularity := map[Name]int{"popular": 10, "unpopular": 1, "newcomer": 1}

	cs.Cache(&Data{Name: "popular", ExpireTime: 100 * time.Second}, 0, 1.0, rng, popularity)
	cs.Cache(&Data{Name: "unpopular", ExpireTime: 100 * time.Second}, 0, 1.0, rng, popularity)
	cached, evictedName, evicted := cs.Cache(&Data{Name: "newcomer", ExpireTime: 50 * time.Second}, 0, 1.0, rng, popularity)

	assert.True(t, cached)
	assert.True(t, evicted)
	assert.Equal(t, Name("newcomer"), evictedName)
	assert.Equal(t, 2, cs.Len())
}

func TestContentStore_SendDataBuildsFreshPacketStampedNow(t *testing.T) {
	cs := NewContentStore(0, 5, nil)
	interest := NewInterest(0, "uuv1/health_info", 5*time.Second)
	data := cs.SendData(interest, 42*time.Second, 60*time.Second, 40*time.Second, 2000)
	assert.Equal(t, 42*time.Second, data.SendTime)
	assert.Equal(t, 42*time.Second+60*time.Second, data.ExpireTime)
}

func TestContentStore_Reset(t *testing.T) {
	cs := NewContentStore(0, 5, []*Data{{Name: "n"}})
	cs.Reset()
	assert.Equal(t, 0, cs.Len())
}
