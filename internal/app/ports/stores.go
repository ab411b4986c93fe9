package ports

import (
	"context"

	"fleurish/internal/domain/gameplay"
)

// TokenStore keeps the backend bearer token of each gateway session.
type TokenStore interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Save(ctx context.Context, sessionID, token string) error
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore holds live garden sessions for as long as the gateway runs.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*gameplay.Session, error)
	Put(ctx context.Context, session *gameplay.Session) error
	Delete(ctx context.Context, sessionID string) error
}
