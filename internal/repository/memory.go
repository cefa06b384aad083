package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-service/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-service/internal/gaming"
)

// MemorySessionStore - the reference in-memory session registry. Single
// process only; the manager provides all cross-operation serialization, the
// store's own lock just keeps individual calls safe.
type MemorySessionStore struct {
	mu       sync.RWMutex
	byID     map[string]*gaming.GamingSession
	idByCode map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		byID:     make(map[string]*gaming.GamingSession),
		idByCode: make(map[string]string),
	}
}

func (that *MemorySessionStore) Upsert(_ context.Context, session *gaming.GamingSession) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.byID[session.SessionID] = session
	that.idByCode[session.InvitationCode] = session.SessionID

	return nil
}

func (that *MemorySessionStore) ByID(_ context.Context, sessionID string) (*gaming.GamingSession, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.byID[sessionID]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return session, nil
}

func (that *MemorySessionStore) ByInvitationCode(_ context.Context, invitationCode string) (*gaming.GamingSession, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	sessionID, ok := that.idByCode[invitationCode]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	session, ok := that.byID[sessionID]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return session, nil
}

func (that *MemorySessionStore) ByGameID(_ context.Context, gameID string) (*gaming.GamingSession, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, session := range that.byID {
		if session.CurrentGame != nil && session.CurrentGame.ID == gameID {
			return session, nil
		}
	}

	return nil, apperror.ErrSessionNotFound
}

func (that *MemorySessionStore) DeleteByID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.byID[sessionID]
	if !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.idByCode, session.InvitationCode)
	delete(that.byID, sessionID)

	return nil
}

func (that *MemorySessionStore) All(_ context.Context) ([]*gaming.GamingSession, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	sessions := make([]*gaming.GamingSession, 0, len(that.byID))
	for _, session := range that.byID {
		sessions = append(sessions, session)
	}

	return sessions, nil
}
