package container

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/Zachkp/work-timeline/internal/gallery"
)

// DefaultMaxSessions bounds a Store created by NewStore
const DefaultMaxSessions = 10000

type session struct {
	mu       sync.Mutex
	c        *Container
	lastSeen time.Time
}

// Store keeps one Container per visitor session.
// Calls for the same session are serialized.
type Store struct {
	gallery *gallery.Gallery
	now     func() time.Time
	max     int

	mu       sync.Mutex
	sessions map[string]*session
}

// NewStore creates an empty Store whose containers share g
func NewStore(g *gallery.Gallery) *Store {
	return &Store{
		gallery:  g,
		now:      time.Now,
		max:      DefaultMaxSessions,
		sessions: make(map[string]*session),
	}
}

// With runs fn against the container for id, creating a new session when id
// is empty or unknown. It returns the session id that was used.
func (s *Store) With(id string, fn func(*Container)) string {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || id == "" {
		if len(s.sessions) >= s.max {
			s.evictOldest()
		}
		id = uuid.NewString()
		sess = &session{c: New(s.gallery)}
		s.sessions[id] = sess
		klog.V(1).Infof("new work session %s", id)
	}
	sess.lastSeen = s.now()
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.c)
	return id
}

// Existing runs fn against the container for id only when that session is
// live. It reports whether fn ran and never creates a session.
func (s *Store) Existing(id string, fn func(*Container)) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.c)
	return true
}

// evictOldest drops the least recently seen session. s.mu must be held.
func (s *Store) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		klog.V(1).Infof("session limit reached, evicted work session %s", oldestID)
	}
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many went
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done
func (s *Store) Run(ctx context.Context, every, maxIdle time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(maxIdle); n > 0 {
				klog.Infof("Session cleanup: removed %d idle work sessions", n)
			}
		}
	}
}
