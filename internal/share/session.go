// Package share maintains the state needed to mirror a canvas between LAN
// peers: a site identity, a lamport clock for ordering, and dedupe of
// strokes that arrive more than once through relaying.
package share

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"snappyruler/internal/engine"
)

// StampedStroke is a committed stroke plus the ordering metadata it travels
// with.
type StampedStroke struct {
	Stroke  *engine.Stroke `json:"stroke"`
	Site    string         `json:"site"`
	Lamport uint64         `json:"lamport"`
}

// Session tracks one peer's view of a shared canvas. Unlike the engine it
// is locked: the network reader goroutine and the UI thread both touch it.
type Session struct {
	siteID  string
	lamport atomic.Uint64

	mu   sync.RWMutex
	seen map[string]StampedStroke // by stroke ID
}

// NewSession creates a session with a fresh site identity.
func NewSession() *Session {
	return &Session{
		siteID: uuid.NewString(),
		seen:   make(map[string]StampedStroke),
	}
}

// SiteID returns this peer's identity.
func (s *Session) SiteID() string {
	return s.siteID
}

// AddLocal stamps a locally committed stroke with this site's identity and
// the next lamport tick, records it, and returns the stamped form to
// broadcast.
func (s *Session) AddLocal(stroke *engine.Stroke) StampedStroke {
	stamped := StampedStroke{
		Stroke:  stroke,
		Site:    s.siteID,
		Lamport: s.lamport.Add(1),
	}
	s.mu.Lock()
	s.seen[stroke.ID] = stamped
	s.mu.Unlock()
	return stamped
}

// AddRemote merges a stroke received from the network. It returns true if
// the stroke is new and should be applied; duplicates (relayed copies, or
// our own strokes echoed back) return false. The lamport clock advances to
// stay ahead of every peer we have heard from.
func (s *Session) AddRemote(stamped StampedStroke) bool {
	if stamped.Stroke == nil || stamped.Stroke.ID == "" {
		return false
	}
	s.observe(stamped.Lamport)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.seen[stamped.Stroke.ID]; exists {
		return false
	}
	if stamped.Site == s.siteID {
		return false
	}
	s.seen[stamped.Stroke.ID] = stamped
	log.Printf("[share] merged stroke %s from site %s", stamped.Stroke.ID, stamped.Site)
	return true
}

// Reset forgets all recorded strokes, used when a peer clears the board.
func (s *Session) Reset() {
	s.mu.Lock()
	s.seen = make(map[string]StampedStroke)
	s.mu.Unlock()
}

// All returns every recorded stroke, for syncing a late joiner.
func (s *Session) All() []StampedStroke {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StampedStroke, 0, len(s.seen))
	for _, st := range s.seen {
		out = append(out, st)
	}
	return out
}

// Count returns the number of recorded strokes.
func (s *Session) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}

// observe advances the lamport clock past a remote timestamp.
func (s *Session) observe(remote uint64) {
	for {
		cur := s.lamport.Load()
		if remote <= cur {
			return
		}
		if s.lamport.CompareAndSwap(cur, remote) {
			return
		}
	}
}
