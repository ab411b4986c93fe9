package memory

import (
	"context"
	"testing"

	"fleurish/internal/app/ports"
	"fleurish/internal/domain/economy"
	"fleurish/internal/domain/gameplay"
	"fleurish/internal/domain/garden"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenStore(NewStore())

	_, err := tokens.Get(ctx, "s-1")
	require.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, tokens.Save(ctx, "s-1", "tok"))
	got, err := tokens.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)

	require.NoError(t, tokens.Delete(ctx, "s-1"))
	_, err = tokens.Get(ctx, "s-1")
	require.ErrorIs(t, err, ports.ErrNotFound)

	require.ErrorIs(t, tokens.Save(ctx, "s-1", " "), ports.ErrConflict)
}

func TestSessionStoreReplacesOnPut(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionStore(NewStore())
	state := gameplay.NewState(garden.NewGrid(), economy.NewLedger(economy.Balances{}, economy.DefaultCatalog()))

	first := gameplay.NewSession("s-1", "u-1", "g-1", state)
	second := gameplay.NewSession("s-1", "u-1", "g-1", state)
	require.NoError(t, sessions.Put(ctx, first))
	require.NoError(t, sessions.Put(ctx, second))

	got, err := sessions.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Same(t, second, got)

	require.NoError(t, sessions.Delete(ctx, "s-1"))
	_, err = sessions.Get(ctx, "s-1")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
