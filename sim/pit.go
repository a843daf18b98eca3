package sim

// pendingRequest records one in-flight Interest waiting on a Data response,
// paired with the channel id it arrived on so the eventual Data can be
// forwarded back out the same interface.
type pendingRequest struct {
	interest  *Interest
	channelID int
}

// PendingInterestTable suppresses duplicate upstream requests: at most one
// Interest per name is ever forwarded upstream while entries for that name
// remain outstanding.
type PendingInterestTable struct {
	entries map[Name][]pendingRequest
}

// NewPendingInterestTable creates an empty PIT.
func NewPendingInterestTable() *PendingInterestTable {
	return &PendingInterestTable{entries: make(map[Name][]pendingRequest)}
}

// Search reports whether a request for name is already outstanding.
func (p *PendingInterestTable) Search(name Name) bool {
	_, ok := p.entries[name]
	return ok
}

// AddName creates the first PIT entry for name, recording the interest and
// the channel it arrived on.
func (p *PendingInterestTable) AddName(interest *Interest, fromChannelID int) {
	p.entries[interest.Name] = []pendingRequest{{interest: interest, channelID: fromChannelID}}
}

// AddInterface appends a further (interest, channel) pair to an
// already-outstanding entry for interest.Name; the duplicate interest is
// not forwarded upstream again.
func (p *PendingInterestTable) AddInterface(interest *Interest, fromChannelID int) {
	p.entries[interest.Name] = append(p.entries[interest.Name], pendingRequest{interest: interest, channelID: fromChannelID})
}

// Remove deletes the entry for name, returning the interests/channels that
// were waiting on it so the caller can forward the arriving Data out each
// one. Called once, when the matching Data arrives.
func (p *PendingInterestTable) Remove(name Name) []pendingRequest {
	waiting := p.entries[name]
	delete(p.entries, name)
	return waiting
}

// Len reports the number of distinct names with outstanding requests.
func (p *PendingInterestTable) Len() int {
	return len(p.entries)
}
