package store

import (
	"sync"
	"time"
)

// DefaultIdleTTL is how long an unused session store is kept.
const DefaultIdleTTL = 30 * time.Minute

type session struct {
	store    *Store
	lastSeen time.Time
}

// Registry hands out one Store per username. Anonymous callers get a fresh,
// unregistered Store every time. Stores not asked for within IdleTTL are
// dropped; the next Get starts over from InitialState.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*session
	listeners []Listener
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRegistry returns a Registry whose stores all carry listeners.
func NewRegistry(listeners ...Listener) *Registry {
	return &Registry{
		sessions:  make(map[string]*session),
		listeners: listeners,
		idleTTL:   DefaultIdleTTL,
		now:       time.Now,
	}
}

// SetIdleTTL changes the idle lifetime of session stores. Zero or less keeps
// them forever.
func (r *Registry) SetIdleTTL(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idleTTL = d
}

func (r *Registry) Get(username string) *Store {
	if username == "" {
		return r.newStore()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	s, ok := r.sessions[username]
	if !ok {
		s = &session{store: r.newStore()}
		r.sessions[username] = s
	}
	s.lastSeen = now
	return s.store
}

// sweep drops idle sessions, at most once per idle period.
func (r *Registry) sweep(now time.Time) {
	if r.idleTTL <= 0 || now.Sub(r.lastSweep) < r.idleTTL {
		return
	}
	for username, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.idleTTL {
			delete(r.sessions, username)
		}
	}
	r.lastSweep = now
}

// Forget drops the user's store; the next Get starts from InitialState.
func (r *Registry) Forget(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, username)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) newStore() *Store {
	st := New(InitialState())
	for _, l := range r.listeners {
		st.Subscribe(l)
	}
	return st
}
