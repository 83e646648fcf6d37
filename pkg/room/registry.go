package room

import (
	"errors"
	"sync"

	"seotda-server/pkg/playable"
)

// ErrSessionExists is returned when a room already has a game in progress
var ErrSessionExists = errors.New("a game is already in progress")

// ErrNoActiveSession is returned when a room has no game in progress
var ErrNoActiveSession = errors.New("there is no game in progress")

// Session is a game in progress
type Session interface {
	playable.Playable
	playable.Notifier
	playable.Abortable
}

// Registry holds the game in progress of every room
// Sessions outlive their dealer, a dealer that is recreated picks the session back up
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Create stores the session for the room
func (r *Registry) Create(roomUUID string, session Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[roomUUID]; ok {
		return ErrSessionExists
	}

	r.sessions[roomUUID] = session
	return nil
}

// Get returns the session of the room
func (r *Registry) Get(roomUUID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[roomUUID]
	return s, ok
}

// Remove deletes the session of the room
func (r *Registry) Remove(roomUUID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, roomUUID)
}

// Len returns the number of games in progress
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
