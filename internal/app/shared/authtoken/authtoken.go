// Package authtoken resolves the backend bearer token of a gateway session.
package authtoken

import (
	"context"
	"errors"
	"strings"

	"fleurish/internal/app/ports"
)

// Resolve returns the stored token for a session. A missing session id or
// token is reported as ports.ErrNotAuthenticated.
func Resolve(ctx context.Context, store ports.TokenStore, sessionID string) (string, error) {
	if store == nil || strings.TrimSpace(sessionID) == "" {
		return "", ports.ErrNotAuthenticated
	}
	token, err := store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ports.ErrNotAuthenticated
		}
		return "", err
	}
	if strings.TrimSpace(token) == "" {
		return "", ports.ErrNotAuthenticated
	}
	return token, nil
}

// ClearOnUnauthenticated drops the stored token when the backend rejected it
// and returns err unchanged.
func ClearOnUnauthenticated(ctx context.Context, store ports.TokenStore, sessionID string, err error) error {
	if err == nil || store == nil || !errors.Is(err, ports.ErrNotAuthenticated) {
		return err
	}
	_ = store.Delete(ctx, sessionID)
	return err
}
