package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/virtual-defence/vds-backend/internal/database"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// CreateSession creates a new session for a user and stores it in Redis.
// Any existing session for the uid is invalidated first so the 7-day timer
// resets from the current sign-in. Returns the session token.
func CreateSession(ctx context.Context, uid string) (string, error) {
	InvalidateUserSessions(ctx, uid)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	sessionToken := base64.URLEncoding.EncodeToString(tokenBytes)

	sessionKey := SessionKeyPrefix + sessionToken
	userSessionKey := UserSessionKeyPrefix + uid

	if err := database.RedisClient.Set(ctx, sessionKey, uid, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := database.RedisClient.Set(ctx, userSessionKey, sessionToken, SessionDuration).Err(); err != nil {
		return "", err
	}

	return sessionToken, nil
}

// ValidateSession checks if a session token is valid and returns the uid.
func ValidateSession(ctx context.Context, sessionToken string) (string, bool) {
	if sessionToken == "" {
		return "", false
	}

	uid, err := database.RedisClient.Get(ctx, SessionKeyPrefix+sessionToken).Result()
	if err != nil || uid == "" {
		return "", false
	}
	return uid, true
}

// InvalidateSession removes a session from Redis (sign-out).
func InvalidateSession(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	sessionKey := SessionKeyPrefix + sessionToken

	uid, err := database.RedisClient.Get(ctx, sessionKey).Result()
	if err == nil && uid != "" {
		database.RedisClient.Del(ctx, UserSessionKeyPrefix+uid)
	}

	return database.RedisClient.Del(ctx, sessionKey).Err()
}

// InvalidateUserSessions invalidates the current session for a uid.
func InvalidateUserSessions(ctx context.Context, uid string) error {
	userSessionKey := UserSessionKeyPrefix + uid

	sessionToken, err := database.RedisClient.Get(ctx, userSessionKey).Result()
	if err == nil && sessionToken != "" {
		database.RedisClient.Del(ctx, SessionKeyPrefix+sessionToken)
	}

	return database.RedisClient.Del(ctx, userSessionKey).Err()
}
