/*
session.go - Ephemeral RFQ and quote cache

PURPOSE:
  Holds the RFQs created during one conversational session together
  with their synthesized quote sets. Quotes are computed lazily on
  first read of an RFQ and frozen for the RFQ's lifetime, which keeps
  repeated reads deterministic.

DESIGN:
  The session is an explicit handle passed to every engine call, not
  module-level state. A concurrent host gets isolation by creating one
  Session per conversation; the internal RWMutex additionally makes a
  single shared Session safe, mirroring the in-memory stores elsewhere
  in this codebase.

  No TTL or capacity bound: sessions are demo-scale and die with the
  conversation.

SEE ALSO:
  - synthesize.go: The only writer of quote sets
*/
package engine

import "sync"

type Session struct {
	mu     sync.RWMutex
	rfqs   map[RFQID]RFQ
	quotes map[RFQID][]VendorQuote
}

func NewSession() *Session {
	return &Session{
		rfqs:   make(map[RFQID]RFQ),
		quotes: make(map[RFQID][]VendorQuote),
	}
}

// RFQ returns the stored RFQ, if any.
func (s *Session) RFQ(id RFQID) (RFQ, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rfq, ok := s.rfqs[id]
	return rfq, ok
}

// PutRFQ stores or replaces an RFQ.
func (s *Session) PutRFQ(rfq RFQ) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rfqs[rfq.ID] = rfq
}

// Quotes returns a copy of the cached quote set for an RFQ. The second
// return distinguishes "never synthesized" from an empty cached set.
func (s *Session) Quotes(id RFQID) ([]VendorQuote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cached, ok := s.quotes[id]
	if !ok {
		return nil, false
	}
	out := make([]VendorQuote, len(cached))
	copy(out, cached)
	return out, true
}

// PutQuotes freezes the quote set for an RFQ.
func (s *Session) PutQuotes(id RFQID, quotes []VendorQuote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[id] = quotes
}

// ListRFQs returns all RFQs in the session (unordered).
func (s *Session) ListRFQs() []RFQ {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RFQ, 0, len(s.rfqs))
	for _, rfq := range s.rfqs {
		out = append(out, rfq)
	}
	return out
}

// Reset atomically clears both maps. Reference data is untouched.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rfqs = make(map[RFQID]RFQ)
	s.quotes = make(map[RFQID][]VendorQuote)
}
