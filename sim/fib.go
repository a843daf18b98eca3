package sim

import "fmt"

// ForwardingTable is a node's FIB: a static, per-run mapping from a data
// name to the outbound channel id an Interest for that name is sent on.
type ForwardingTable struct {
	nodeID int
	routes map[Name]int
}

// NewForwardingTable creates a ForwardingTable from a name->channel mapping
// loaded from a network descriptor.
func NewForwardingTable(nodeID int, routes map[Name]int) *ForwardingTable {
	return &ForwardingTable{nodeID: nodeID, routes: routes}
}

// Route returns the outbound channel id for name and whether an entry
// exists. A missing entry is a fatal configuration error, not a runtime
// condition to recover from: see World's eager FIB-completeness check.
func (f *ForwardingTable) Route(name Name) (int, bool) {
	id, ok := f.routes[name]
	return id, ok
}

// SendRequest looks up the outbound channel for interest.Name and forwards
// the interest onto it via the World's channel table. Returns an error if
// no route exists; Node.ReceiveInterest records such a miss through
// Metrics.RecordFIBMiss and continues the run, since a missing route is
// already rejected as fatal when the World is constructed.
func (f *ForwardingTable) SendRequest(sim *Simulator, interest *Interest) error {
	channelID, ok := f.Route(interest.Name)
	if !ok {
		return fmt.Errorf("fib: node %d has no route for %q", f.nodeID, interest.Name)
	}
	channel := sim.World.Channel(channelID)
	channel.ForwardInterest(sim, interest, f.nodeID)
	return nil
}
