package store

import "sync/atomic"

// sequence guards async flows against stale fulfillments. Each dispatch takes
// a ticket before issuing its API call; a fulfillment is applied only while
// its ticket is still the latest, so an older success arriving after a newer
// request was issued cannot overwrite fresher state. Rejections are not
// gated: a flow's terminal error is always recorded.
type sequence struct {
	n atomic.Uint64
}

// next issues a new ticket, invalidating all previous ones
func (s *sequence) next() uint64 {
	return s.n.Add(1)
}

// current reports whether ticket is still the latest issued
func (s *sequence) current(ticket uint64) bool {
	return s.n.Load() == ticket
}
