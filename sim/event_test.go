package sim

import (
	"container/heap"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeEvent struct {
	ts  time.Duration
	tag string
}

func (e *fakeEvent) Timestamp() time.Duration { return e.ts }
func (e *fakeEvent) Execute(*Simulator)        {}

func TestEventQueue_OrdersByTimestamp(t *testing.T) {
	q := make(eventQueue, 0)
	heap.Init(&q)
	heap.Push(&q, eventEntry{event: &fakeEvent{ts: 30}, seq: 0})
	heap.Push(&q, eventEntry{event: &fakeEvent{ts: 10}, seq: 1})
	heap.Push(&q, eventEntry{event: &fakeEvent{ts: 20}, seq: 2})

	var order []time.Duration
	for q.Len() > 0 {
		order = append(order, heap.Pop(&q).(eventEntry).event.Timestamp())
	}
	assert.Equal(t, []time.Duration{10, 20, 30}, order)
}

func TestEventQueue_TieBreaksBySeq(t *testing.T) {
	q := make(eventQueue, 0)
	heap.Init(&q)
	heap.Push(&q, eventEntry{event: &fakeEvent{ts: 10, tag: "b"}, seq: 5})
	heap.Push(&q, eventEntry{event: &fakeEvent{ts: 10, tag: "a"}, seq: 1})

	first := heap.Pop(&q).(eventEntry).event.(*fakeEvent)
	second := heap.Pop(&q).(eventEntry).event.(*fakeEvent)
	assert.Equal(t, "a", first.tag)
	assert.Equal(t, "b", second.tag)
}
