package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionStore persists per-session state in redis so a therapist dashboard
// can follow along: the currently selected exercise and running frame
// counters. Everything here is best effort — a session keeps working when
// redis is down, it just stops being observable.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{
		rdb: rdb,
		ttl: 24 * time.Hour,
	}
}

func (s *SessionStore) key(sessionID string) string {
	return "coach:session:" + sessionID
}

func (s *SessionStore) available() bool {
	return s != nil && s.rdb != nil
}

// SaveSelection records the session's active exercise.
func (s *SessionStore) SaveSelection(ctx context.Context, sessionID string, exerciseID int) error {
	if !s.available() {
		return nil
	}
	key := s.key(sessionID)
	if err := s.rdb.HSet(ctx, key, "exercise_id", exerciseID).Err(); err != nil {
		return fmt.Errorf("failed to save exercise selection: %w", err)
	}
	if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
		zap.L().Warn("Failed to set session key TTL", zap.Error(err), zap.String("session_id", sessionID))
	}
	return nil
}

// ClearSelection removes the active exercise, keeping the frame counters.
func (s *SessionStore) ClearSelection(ctx context.Context, sessionID string) error {
	if !s.available() {
		return nil
	}
	if err := s.rdb.HDel(ctx, s.key(sessionID), "exercise_id").Err(); err != nil {
		return fmt.Errorf("failed to clear exercise selection: %w", err)
	}
	return nil
}

// RecordResult bumps the session's frame counters for one judged frame.
func (s *SessionStore) RecordResult(ctx context.Context, sessionID string, valid bool) error {
	if !s.available() {
		return nil
	}
	key := s.key(sessionID)
	if err := s.rdb.HIncrBy(ctx, key, "frames_total", 1).Err(); err != nil {
		return fmt.Errorf("failed to record frame: %w", err)
	}
	if valid {
		if err := s.rdb.HIncrBy(ctx, key, "frames_valid", 1).Err(); err != nil {
			return fmt.Errorf("failed to record valid frame: %w", err)
		}
	}
	return nil
}

// Summary returns the raw session hash (exercise_id, frames_total,
// frames_valid) for dashboards and debugging.
func (s *SessionStore) Summary(ctx context.Context, sessionID string) (map[string]string, error) {
	if !s.available() {
		return nil, fmt.Errorf("session store is not configured")
	}
	summary, err := s.rdb.HGetAll(ctx, s.key(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session summary: %w", err)
	}
	return summary, nil
}
