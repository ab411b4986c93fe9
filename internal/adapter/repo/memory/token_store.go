package memory

import (
	"context"
	"strings"

	"fleurish/internal/app/ports"
)

type TokenStore struct {
	store *Store
}

func NewTokenStore(store *Store) TokenStore {
	return TokenStore{store: store}
}

func (r TokenStore) Get(_ context.Context, sessionID string) (string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	token, ok := r.store.tokens[sessionID]
	if !ok {
		return "", ports.ErrNotFound
	}
	return token, nil
}

func (r TokenStore) Save(_ context.Context, sessionID, token string) error {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(token) == "" {
		return ports.ErrConflict
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tokens[sessionID] = token
	return nil
}

func (r TokenStore) Delete(_ context.Context, sessionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.tokens, sessionID)
	return nil
}
