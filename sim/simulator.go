package sim

import (
	"container/heap"
	"time"

	"github.com/sirupsen/logrus"
)

// Simulator drives one closed-world sample: a single logical clock and a
// min-heap of scheduled events. There is no wall-clock parallelism within
// a sample — see SampleDriver for parallelism across independent samples.
type Simulator struct {
	World *World
	RNG   *PartitionedRNG

	Clock    time.Duration
	Deadline time.Duration

	queue   eventQueue
	nextSeq int64
}

// NewSimulator creates a Simulator bound to world, running until deadline,
// using rng as the source of all randomness for this sample.
func NewSimulator(world *World, rng *PartitionedRNG, deadline time.Duration) *Simulator {
	return &Simulator{
		World:    world,
		RNG:      rng,
		Deadline: deadline,
		queue:    make(eventQueue, 0),
	}
}

// Schedule pushes ev onto the event queue. Events scheduled beyond the
// deadline are kept (they are discarded lazily by Run, which stops
// popping once the next event is at or past the deadline).
func (s *Simulator) Schedule(ev Event) {
	heap.Push(&s.queue, eventEntry{event: ev, seq: s.nextSeq})
	s.nextSeq++
}

// Run pops events in (Timestamp, seq) order, advancing the clock
// monotonically, until the queue is empty or the next event's timestamp
// reaches the deadline; an event scheduled exactly at the deadline does
// not run.
func (s *Simulator) Run() {
	for s.queue.Len() > 0 {
		next := s.queue[0].event.Timestamp()
		if next >= s.Deadline {
			break
		}
		entry := heap.Pop(&s.queue).(eventEntry)
		s.Clock = entry.event.Timestamp()
		entry.event.Execute(s)
	}
	s.Clock = s.Deadline
	logrus.WithField("clock", s.Clock).Debug("sample deadline reached")
}
