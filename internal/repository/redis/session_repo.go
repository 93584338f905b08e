package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("session token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("session extend failed")
	ErrTokenDeleted     = errors.New("session delete failed")
)

const (
	SessionKeyPrefix = "session:user:token"
	SessionExpire    = 30 * time.Minute
)

// SessionRepository mirrors the active session token per user so a
// later login invalidates earlier ones.
type SessionRepository struct{}

func sessionKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", SessionKeyPrefix, userID)
}

func (r *SessionRepository) AddToken(userID uint64, token string) error {
	if err := Client.Set(context.Background(), sessionKey(userID), token, SessionExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) GetToken(userID uint64) (string, error) {
	token, err := Client.Get(context.Background(), sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendToken refreshes the sliding expiry after a validated request.
func (r *SessionRepository) ExtendToken(userID uint64) error {
	if _, err := Client.Expire(context.Background(), sessionKey(userID), SessionExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) DeleteToken(userID uint64) error {
	if err := Client.Del(context.Background(), sessionKey(userID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
