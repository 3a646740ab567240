package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"avialog/backend/internal/logging"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// SessionData represents a signed-in user's session. Established at sign-in
// and torn down at sign-out; nothing about the current user is held in
// process-global state.
type SessionData struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService manages user sessions in Redis
type SessionService struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionService(redis *redis.Client) *SessionService {
	return &SessionService{
		redis: redis,
		ttl:   7 * 24 * time.Hour,
	}
}

// CreateSession creates a new session for a user
func (s *SessionService) CreateSession(ctx context.Context, userID, email, name string) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	session := SessionData{
		SessionID: sessionID,
		UserID:    userID,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	logging.Info("Session created", "session_id", sessionID, "user_id", userID)
	return sessionID, nil
}

// GetSession retrieves and deserializes a session by id
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// DeleteSession tears down a session at sign-out
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	logging.Info("Session deleted", "session_id", sessionID)
	return nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
