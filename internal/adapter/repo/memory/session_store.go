package memory

import (
	"context"

	"fleurish/internal/app/ports"
	"fleurish/internal/domain/gameplay"
)

type SessionStore struct {
	store *Store
}

func NewSessionStore(store *Store) SessionStore {
	return SessionStore{store: store}
}

func (r SessionStore) Get(_ context.Context, sessionID string) (*gameplay.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.sessions[sessionID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return s, nil
}

// Put replaces any previous session with the same id; a reload starts fresh.
func (r SessionStore) Put(_ context.Context, session *gameplay.Session) error {
	if session == nil || session.ID == "" {
		return ports.ErrConflict
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions[session.ID] = session
	return nil
}

func (r SessionStore) Delete(_ context.Context, sessionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, sessionID)
	return nil
}
