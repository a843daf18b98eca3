package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/isladuncan/ndnsim/config"
	"github.com/sirupsen/logrus"
)

// Tunables is the resolved, time.Duration-typed form of config.Tunables:
// built once from the loaded YAML document and then read directly by the
// Channel/Node/ContentStore/Generator logic.
type Tunables struct {
	SignalSpeed   float64
	Bandwidth     float64
	DelayVariance float64

	HiTTL time.Duration
	MiTTL time.Duration

	CacheSize      int
	CacheAdmitProb float64
	SizeMode       SizeMode

	PCentral              float64
	GeneratorMeanInterval time.Duration

	RunTime                time.Duration
	Samples                int
	RepopulateCacheOnReset bool
	ParallelSamples        bool

	Seed int64
}

// ResolveTunables converts a config.Tunables document into the
// time.Duration-typed form the simulation engine uses.
func ResolveTunables(t config.Tunables) Tunables {
	return Tunables{
		SignalSpeed:            t.SignalSpeed,
		Bandwidth:              t.Bandwidth,
		DelayVariance:          t.DelayVarianceS,
		HiTTL:                  durationFromSeconds(t.HiTTLSeconds),
		MiTTL:                  durationFromSeconds(t.MiTTLSeconds),
		CacheSize:              t.CacheSize,
		CacheAdmitProb:         t.CacheAdmitProb,
		SizeMode:               SizeMode(t.SizeMode),
		PCentral:               t.PCentral,
		GeneratorMeanInterval:  durationFromSeconds(t.GeneratorMeanIntervalSeconds),
		RunTime:                durationFromSeconds(t.RunTimeSeconds),
		Samples:                t.Samples,
		RepopulateCacheOnReset: t.RepopulateCacheOnReset,
		ParallelSamples:        t.ParallelSamples,
		Seed:                   t.Seed,
	}
}

func durationFromSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// producerCatalogue holds the names a producer node may be asked for,
// used by the Generator to pick request targets.
type producerCatalogue struct {
	nodeID int
	names  []Name
}

// World is the arena owning every Node and Channel for one sample, built
// from a config.Descriptor. SampleDriver builds a fresh World for each
// sample; ResetSamples lets a caller reuse one World across samples
// instead.
type World struct {
	Tunables Tunables
	Metrics  *Metrics

	nodes    []*Node
	channels []*Channel

	edgeChannelIDs []int
	catalogues     []producerCatalogue
	centralNodeID  int

	seeds map[int][]*Data
}

// Node returns the node with the given id. Panics on an out-of-range id,
// since any such reference is a construction-time defect, never a
// runtime condition.
func (w *World) Node(id int) *Node {
	return w.nodes[id]
}

// Channel returns the channel with the given id.
func (w *World) Channel(id int) *Channel {
	for _, c := range w.channels {
		if c.ID == id {
			return c
		}
	}
	panic(fmt.Sprintf("world: no channel with id %d", id))
}

// Nodes returns every node in the world, in id order.
func (w *World) Nodes() []*Node {
	return w.nodes
}

// EdgeChannelIDs returns the ids of every channel with a UserEndpoint
// side, the entry points the Generator injects Interests through.
func (w *World) EdgeChannelIDs() []int {
	return w.edgeChannelIDs
}

// Catalogues returns the producer name catalogues, used by the Generator
// to pick a target name for a newly-generated Interest.
func (w *World) Catalogues() []producerCatalogue {
	return w.catalogues
}

// CentralNodeID returns the id of the node favored by Tunables.PCentral
// in request generation.
func (w *World) CentralNodeID() int {
	return w.centralNodeID
}

// NewWorld builds a World from a descriptor and resolved tunables. It
// validates FIB completeness and loop-freedom eagerly: any node whose FIB
// cannot reach every catalogued producer without cycling is a fatal
// configuration error, not a runtime condition to discover mid-run.
func NewWorld(desc config.Descriptor, tunables Tunables, metrics *Metrics) (*World, error) {
	w := &World{
		Tunables: tunables,
		Metrics:  metrics,
		seeds:    make(map[int][]*Data),
	}

	for _, ed := range desc.Edges {
		w.channels = append(w.channels, NewChannel(ed.ID, ed.A, ed.B, ed.LengthM))
	}
	for _, ec := range desc.EdgeChannels {
		w.channels = append(w.channels, NewChannel(ec.ID, UserEndpoint, ec.Node, ec.LengthM))
		w.edgeChannelIDs = append(w.edgeChannelIDs, ec.ID)
	}

	w.nodes = make([]*Node, len(desc.Nodes))
	for _, nd := range desc.Nodes {
		routes := make(map[Name]int, len(nd.Routes))
		for name, ch := range nd.Routes {
			routes[Name(name)] = ch
		}

		seedRNG := rand.New(rand.NewSource(tunables.Seed ^ int64(nd.ID)))
		seed := make([]*Data, 0, len(nd.Seed))
		for _, s := range nd.Seed {
			sizeBits := DataSizeBits(tunables.SizeMode, Name(s), seedRNG)
			seed = append(seed, NewData(Name(s), 0, tunables.HiTTL, tunables.MiTTL, sizeBits))
		}
		w.seeds[nd.ID] = seed

		cacheSize := nd.CacheSize
		if cacheSize == 0 {
			cacheSize = tunables.CacheSize
		}

		var channelIDs []int
		for _, ed := range desc.Edges {
			if ed.A == nd.ID || ed.B == nd.ID {
				channelIDs = append(channelIDs, ed.ID)
			}
		}
		for _, ec := range desc.EdgeChannels {
			if ec.Node == nd.ID {
				channelIDs = append(channelIDs, ec.ID)
			}
		}

		if nd.ID < 0 || nd.ID >= len(w.nodes) {
			return nil, fmt.Errorf("world: node id %d out of range [0,%d)", nd.ID, len(w.nodes))
		}
		w.nodes[nd.ID] = NewNode(nd.ID, Name(nd.ProducerRoot), channelIDs, cacheSize, routes, seed)

		if len(nd.Catalogue) > 0 {
			names := make([]Name, len(nd.Catalogue))
			for i, c := range nd.Catalogue {
				names[i] = Name(c)
			}
			w.catalogues = append(w.catalogues, producerCatalogue{nodeID: nd.ID, names: names})
		}
		if nd.Central {
			w.centralNodeID = nd.ID
		}
	}

	for _, n := range w.nodes {
		if n == nil {
			return nil, fmt.Errorf("world: descriptor is missing a node")
		}
	}

	if err := w.validateRoutes(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"nodes":    len(w.nodes),
		"channels": len(w.channels),
	}).Debug("world constructed")

	return w, nil
}

// validateRoutes checks that, for every producer catalogue entry and
// every node, a FIB path exists from that node toward the producer that
// does not cycle back through a previously-visited node.
func (w *World) validateRoutes() error {
	for _, cat := range w.catalogues {
		for _, n := range w.nodes {
			for _, name := range cat.names {
				if err := w.checkReachable(n, name, make(map[int]bool)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *World) checkReachable(n *Node, name Name, visited map[int]bool) error {
	if name.HasPrefix(n.ProducerRoot) {
		return nil
	}
	if visited[n.ID] {
		return fmt.Errorf("world: FIB loop detected reaching %q from node %d", name, n.ID)
	}
	visited[n.ID] = true

	channelID, ok := n.FIB.Route(name)
	if !ok {
		return fmt.Errorf("world: node %d has no FIB route for %q", n.ID, name)
	}
	channel := w.Channel(channelID)
	nextID := channel.otherEnd(n.ID)
	if nextID == UserEndpoint {
		return fmt.Errorf("world: node %d routes %q off the edge of the network", n.ID, name)
	}
	return w.checkReachable(w.Node(nextID), name, visited)
}

// ResetSamples clears every node's Content Store and the Metrics'
// per-name cache-status counters between independent samples.
func (w *World) ResetSamples() {
	for _, n := range w.nodes {
		n.Reset(w.Tunables.RepopulateCacheOnReset, w.seeds[n.ID])
	}
	w.Metrics.ResetCacheStatus()
}
