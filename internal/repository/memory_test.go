package repository

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-service/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-service/internal/entity"
	"github.com/rocketscienceinc/tictactoe-service/internal/gaming"
)

func newStoredSession(t *testing.T, displayName, invitationCode string) *gaming.GamingSession {
	t.Helper()

	owner := entity.NewPlayerInfo(displayName, false)
	return gaming.NewGamingSession(owner, invitationCode, "tictactoe", "broker.local", 1883)
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Round-trips a session by ID", func(t *testing.T) {
		// Given: a stored session
		store := NewMemorySessionStore()
		session := newStoredSession(t, "Alice", "111111")
		require.NoError(t, store.Upsert(ctx, session))

		// When: loading it back
		loaded, err := store.ByID(ctx, session.SessionID)

		// Then: the same session comes back
		require.NoError(t, err)
		assert.Equal(t, session.SessionID, loaded.SessionID)
		assert.Equal(t, "Alice", loaded.SessionOwner.DisplayName)
	})

	t.Run("Finds a session by invitation code", func(t *testing.T) {
		store := NewMemorySessionStore()
		session := newStoredSession(t, "Alice", "222222")
		require.NoError(t, store.Upsert(ctx, session))

		loaded, err := store.ByInvitationCode(ctx, "222222")

		require.NoError(t, err)
		assert.Equal(t, session.SessionID, loaded.SessionID)
	})

	t.Run("Finds a session by its game ID", func(t *testing.T) {
		// Given: a session hosting a game
		store := NewMemorySessionStore()
		session := newStoredSession(t, "Alice", "333333")

		game, err := gaming.NewGame(entity.ModeTwoPlayers, session.SessionOwner, nil,
			session.SessionID, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		session.SetGame(game)
		require.NoError(t, store.Upsert(ctx, session))

		// When: looking it up by the game
		loaded, err := store.ByGameID(ctx, game.ID)

		require.NoError(t, err)
		assert.Equal(t, session.SessionID, loaded.SessionID)
	})

	t.Run("Returns ErrSessionNotFound for misses", func(t *testing.T) {
		store := NewMemorySessionStore()

		_, err := store.ByID(ctx, "missing")
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)

		_, err = store.ByInvitationCode(ctx, "000000")
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)

		_, err = store.ByGameID(ctx, "missing")
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = store.DeleteByID(ctx, "missing")
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Delete removes the session and its invitation code", func(t *testing.T) {
		store := NewMemorySessionStore()
		session := newStoredSession(t, "Alice", "444444")
		require.NoError(t, store.Upsert(ctx, session))

		// When: deleting it
		require.NoError(t, store.DeleteByID(ctx, session.SessionID))

		// Then: neither lookup path finds it
		_, err := store.ByID(ctx, session.SessionID)
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
		_, err = store.ByInvitationCode(ctx, "444444")
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("All lists every stored session", func(t *testing.T) {
		store := NewMemorySessionStore()
		require.NoError(t, store.Upsert(ctx, newStoredSession(t, "Alice", "555555")))
		require.NoError(t, store.Upsert(ctx, newStoredSession(t, "Bob", "666666")))

		sessions, err := store.All(ctx)

		require.NoError(t, err)
		assert.Len(t, sessions, 2)
	})
}
