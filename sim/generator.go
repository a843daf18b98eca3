package sim

import "time"

// generatorEvent fires a single Interest arrival and reschedules itself
// after an exponentially-distributed interval, giving the whole run a
// Poisson arrival process without a live goroutine driving it.
type generatorEvent struct {
	at time.Duration
}

func (e *generatorEvent) Timestamp() time.Duration { return e.at }

func (e *generatorEvent) Execute(sim *Simulator) {
	emitInterest(sim)
	scheduleNextArrival(sim)
}

// StartGenerator schedules the first arrival after an exponentially
// distributed wait, beginning the Poisson arrival process that runs for
// the rest of the sample. The first arrival waits just like every
// subsequent one; it is never emitted at time zero.
func StartGenerator(sim *Simulator) {
	scheduleNextArrival(sim)
}

func scheduleNextArrival(sim *Simulator) {
	rng := sim.RNG.ForSubsystem(SubsystemGenerator)
	interval := rng.ExpFloat64() * sim.World.Tunables.GeneratorMeanInterval.Seconds()
	sim.Schedule(&generatorEvent{at: sim.Clock + time.Duration(interval*float64(time.Second))})
}

// emitInterest picks a target name (favoring the central node with
// probability PCentral, else a uniformly-chosen producer), mints a fresh
// Interest id, and forwards it in through a uniformly-chosen edge
// channel, exactly as the reference generator injects requests at the
// network's exterior rather than from an existing node.
func emitInterest(sim *Simulator) {
	world := sim.World
	catalogues := world.Catalogues()
	if len(catalogues) == 0 || len(world.EdgeChannelIDs()) == 0 {
		return
	}

	rng := sim.RNG.ForSubsystem(SubsystemGenerator)

	var cat producerCatalogue
	if rng.Float64() < world.Tunables.PCentral {
		cat = catalogueFor(catalogues, world.CentralNodeID())
	} else {
		cat = catalogues[rng.Intn(len(catalogues))]
	}
	if len(cat.names) == 0 {
		return
	}
	name := cat.names[rng.Intn(len(cat.names))]

	id := world.Metrics.NewInterestID()
	interest := NewInterest(id, name, sim.Clock)

	edgeChannelIDs := world.EdgeChannelIDs()
	channelID := edgeChannelIDs[rng.Intn(len(edgeChannelIDs))]
	world.Channel(channelID).ForwardInterest(sim, interest, UserEndpoint)
}

func catalogueFor(catalogues []producerCatalogue, nodeID int) producerCatalogue {
	for _, c := range catalogues {
		if c.nodeID == nodeID {
			return c
		}
	}
	return catalogues[0]
}
