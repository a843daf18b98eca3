package sim

import "time"

// UserEndpoint marks the end of a Channel that terminates outside the
// network — the originating consumer of an Interest, or the final
// destination of a Data response. Channels with a UserEndpoint side are
// the network's edge interfaces.
const UserEndpoint = -1

// Channel connects two endpoints (node ids, or UserEndpoint) and carries
// Interest/Data packets between them with a propagation+transmission
// delay.
type Channel struct {
	ID      int
	A, B    int
	LengthM float64
}

// NewChannel creates a Channel of the given length connecting endpoints a
// and b.
func NewChannel(id, a, b int, lengthM float64) *Channel {
	return &Channel{ID: id, A: a, B: b, LengthM: lengthM}
}

// otherEnd returns the endpoint opposite fromID.
func (c *Channel) otherEnd(fromID int) int {
	if c.A == fromID {
		return c.B
	}
	return c.A
}

// delay computes propagation delay + transmission delay +/- jitter,
// clamped to a 0.01s floor, per the Tunables' SignalSpeed/Bandwidth/
// DelayVariance.
func (c *Channel) delay(sizeBits int, sim *Simulator) time.Duration {
	t := sim.World.Tunables
	rng := sim.RNG.ForSubsystem(SubsystemChannel)

	seconds := c.LengthM/t.SignalSpeed + float64(sizeBits)/t.Bandwidth
	seconds += (rng.Float64()*2 - 1) * t.DelayVariance
	if seconds < 0.01 {
		seconds = 0.01
	}
	return time.Duration(seconds * float64(time.Second))
}

// ForwardInterest schedules delivery of interest to whichever endpoint is
// not fromNodeID, after this channel's delay. A UserEndpoint destination
// is silently dropped: interests only flow outward from a user, never
// back to one.
func (c *Channel) ForwardInterest(sim *Simulator, interest *Interest, fromNodeID int) {
	delay := c.delay(interest.SizeBits, sim)
	rnodeID := c.otherEnd(fromNodeID)
	if rnodeID == UserEndpoint {
		return
	}
	sim.Schedule(&interestArrivalEvent{
		at:        sim.Clock + delay,
		nodeID:    rnodeID,
		channelID: c.ID,
		interest:  interest,
	})
}

// ForwardData schedules delivery of data to whichever endpoint is not
// fromNodeID, after this channel's delay. A UserEndpoint destination means
// the Interest this Data answers has reached the user who issued it: the
// round-trip return time is recorded and the packet's journey ends.
func (c *Channel) ForwardData(sim *Simulator, data *Data, interest *Interest, fromNodeID int) {
	delay := c.delay(data.SizeBits, sim)
	rnodeID := c.otherEnd(fromNodeID)
	if rnodeID == UserEndpoint {
		sim.Schedule(&returnEvent{
			at:       sim.Clock + delay,
			interest: interest,
		})
		return
	}
	sim.Schedule(&dataArrivalEvent{
		at:        sim.Clock + delay,
		nodeID:    rnodeID,
		channelID: c.ID,
		data:      data,
	})
}

type interestArrivalEvent struct {
	at        time.Duration
	nodeID    int
	channelID int
	interest  *Interest
}

func (e *interestArrivalEvent) Timestamp() time.Duration { return e.at }

func (e *interestArrivalEvent) Execute(sim *Simulator) {
	sim.World.Node(e.nodeID).ReceiveInterest(sim, e.interest, e.channelID)
}

type dataArrivalEvent struct {
	at        time.Duration
	nodeID    int
	channelID int
	data      *Data
}

func (e *dataArrivalEvent) Timestamp() time.Duration { return e.at }

func (e *dataArrivalEvent) Execute(sim *Simulator) {
	sim.World.Node(e.nodeID).ReceiveData(sim, e.data)
}

// returnEvent fires when a Data packet reaches the user endpoint that
// originated the corresponding Interest, closing the round trip.
type returnEvent struct {
	at       time.Duration
	interest *Interest
}

func (e *returnEvent) Timestamp() time.Duration { return e.at }

func (e *returnEvent) Execute(sim *Simulator) {
	returnTime := (e.at - e.interest.CreationTime).Seconds()
	sim.World.Metrics.RecordReturnTime(returnTime)
}
