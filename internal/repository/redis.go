package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-service/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-service/internal/gaming"
)

const (
	sessionKeyPrefix    = "gaming-session:"
	invitationKeyPrefix = "invitation-code:"
)

// RedisSessionStore - session registry externalized to redis so that the
// gaming state survives a process restart. Sessions are stored as JSON blobs
// with a separate invitation-code index key.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (that *RedisSessionStore) Upsert(ctx context.Context, session *gaming.GamingSession) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	if err = that.client.Set(ctx, sessionKeyPrefix+session.SessionID, sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	if err = that.client.Set(ctx, invitationKeyPrefix+session.InvitationCode, session.SessionID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set invitation code index: %w", err)
	}

	return nil
}

func (that *RedisSessionStore) ByID(ctx context.Context, sessionID string) (*gaming.GamingSession, error) {
	response, err := that.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session gaming.GamingSession
	if err = json.Unmarshal([]byte(response), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (that *RedisSessionStore) ByInvitationCode(ctx context.Context, invitationCode string) (*gaming.GamingSession, error) {
	sessionID, err := that.client.Get(ctx, invitationKeyPrefix+invitationCode).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation code index: %w", err)
	}

	return that.ByID(ctx, sessionID)
}

func (that *RedisSessionStore) ByGameID(ctx context.Context, gameID string) (*gaming.GamingSession, error) {
	sessions, err := that.All(ctx)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		if session.CurrentGame != nil && session.CurrentGame.ID == gameID {
			return session, nil
		}
	}

	return nil, apperror.ErrSessionNotFound
}

func (that *RedisSessionStore) DeleteByID(ctx context.Context, sessionID string) error {
	session, err := that.ByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if err = that.client.Del(ctx, invitationKeyPrefix+session.InvitationCode).Err(); err != nil {
		return fmt.Errorf("failed to delete invitation code index: %w", err)
	}

	if err = that.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (that *RedisSessionStore) All(ctx context.Context) ([]*gaming.GamingSession, error) {
	var sessions []*gaming.GamingSession

	iter := that.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		response, err := that.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, redis.Nil) {
			continue // Deleted between scan and get.
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get session: %w", err)
		}

		var session gaming.GamingSession
		if err = json.Unmarshal([]byte(response), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session: %w", err)
		}

		sessions = append(sessions, &session)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}

	return sessions, nil
}
