package sim

import "github.com/sirupsen/logrus"

// Node is one forwarder in the overlay: it owns a Content Store, a
// Pending Interest Table and a Forwarding Information Base, and applies
// the single forwarding rule described in ReceiveInterest to every
// Interest it sees.
type Node struct {
	ID           int
	ProducerRoot Name
	ChannelIDs   []int

	CS  *ContentStore
	PIT *PendingInterestTable
	FIB *ForwardingTable

	Popularity map[Name]int

	CacheHits     int
	TotalRequests int
}

// NewNode creates a Node. routes is the FIB's static name->channel map;
// cacheSize bounds the CS; seed pre-populates the CS (may be nil/empty).
func NewNode(id int, producerRoot Name, channelIDs []int, cacheSize int, routes map[Name]int, seed []*Data) *Node {
	return &Node{
		ID:           id,
		ProducerRoot: producerRoot,
		ChannelIDs:   channelIDs,
		CS:           NewContentStore(id, cacheSize, seed),
		PIT:          NewPendingInterestTable(),
		FIB:          NewForwardingTable(id, routes),
		Popularity:   make(map[Name]int),
	}
}

// ReceiveInterest applies the node's forwarding rule to an Interest
// arriving on fromChannelID:
//  1. the node is the producer of the requested name: answer directly.
//  2. the name is held, unexpired, in the CS: answer from cache.
//  3. a request for the name is already pending: suppress, just add this
//     interface to the waiters.
//  4. otherwise: record the pending request and forward upstream via FIB.
func (n *Node) ReceiveInterest(sim *Simulator, interest *Interest, fromChannelID int) {
	n.TotalRequests++
	sim.World.Metrics.RecordHop(interest.ID)
	n.Popularity[interest.Name]++

	switch {
	case interest.Name.HasPrefix(n.ProducerRoot):
		sizeBits := DataSizeBits(sim.World.Tunables.SizeMode, interest.Name, sim.RNG.ForSubsystem(SubsystemCache))
		data := NewData(interest.Name, sim.Clock, sim.World.Tunables.HiTTL, sim.World.Tunables.MiTTL, sizeBits)
		sim.World.Channel(fromChannelID).ForwardData(sim, data, interest, n.ID)

	case n.CS.Search(interest.Name, sim.Clock):
		n.CacheHits++
		sim.World.Metrics.RecordCacheHit(sim.Clock)
		sizeBits := DataSizeBits(sim.World.Tunables.SizeMode, interest.Name, sim.RNG.ForSubsystem(SubsystemCache))
		data := n.CS.SendData(interest, sim.Clock, sim.World.Tunables.HiTTL, sim.World.Tunables.MiTTL, sizeBits)
		sim.World.Channel(fromChannelID).ForwardData(sim, data, interest, n.ID)

	case n.PIT.Search(interest.Name):
		n.PIT.AddInterface(interest, fromChannelID)

	default:
		n.PIT.AddName(interest, fromChannelID)
		if err := n.FIB.SendRequest(sim, interest); err != nil {
			sim.World.Metrics.RecordFIBMiss(n.ID, interest.Name)
		}
	}
}

// ReceiveData processes a Data packet arriving at the node: it satisfies
// every PIT entry waiting on the name, offers the data to the CS for
// caching, and forwards a copy out each waiting interface. Data with no
// matching PIT entry is unsolicited or a duplicate delivery; it is
// logged and discarded without touching the CS.
func (n *Node) ReceiveData(sim *Simulator, data *Data) {
	waiting := n.PIT.Remove(data.Name)
	if len(waiting) == 0 {
		logrus.WithFields(logrus.Fields{"node": n.ID, "name": data.Name}).Warn("node: unsolicited or duplicate data, discarding")
		return
	}

	cached, evictedName, evicted := n.CS.Cache(data, sim.Clock, sim.World.Tunables.CacheAdmitProb, sim.RNG.ForSubsystem(SubsystemCache), n.Popularity)
	if cached {
		sim.World.Metrics.RecordCacheInsert(data.Name)
	}
	if evicted {
		sim.World.Metrics.RecordCacheEvict(evictedName)
	}

	for _, w := range waiting {
		sim.World.Channel(w.channelID).ForwardData(sim, data, w.interest, n.ID)
	}
}

// Reset clears the node's CS between independent samples, optionally
// repopulating it from the original seed content when Tunables asks for
// that.
func (n *Node) Reset(repopulate bool, seed []*Data) {
	if repopulate {
		n.CS = NewContentStore(n.ID, n.CS.capacity, seed)
		return
	}
	n.CS.Reset()
}
