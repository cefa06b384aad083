package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-service/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-service/testing/suite"
)

func TestRedisSessionStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping docker-backed integration test in short mode")
	}

	ctx, st := suite.New(t)

	store := NewRedisSessionStore(st.Storage)

	// Given: a stored session
	session := newStoredSession(t, "Alice", "777777")
	require.NoError(t, store.Upsert(ctx, session))

	// When: loading it back by every lookup path
	byID, err := store.ByID(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, byID.SessionID)

	byCode, err := store.ByInvitationCode(ctx, "777777")
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, byCode.SessionID)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Then: deleting it clears both keys
	require.NoError(t, store.DeleteByID(ctx, session.SessionID))

	_, err = store.ByID(ctx, session.SessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	_, err = store.ByInvitationCode(ctx, "777777")
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
