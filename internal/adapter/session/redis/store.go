// Package redis persists interview sessions in Redis, keyed by the
// authenticated session id.
package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
)

const keyPrefix = "interview:session:"

// Store implements domain.SessionStore on a Redis client. Sessions
// expire with the auth session TTL; an expired or absent key reads back
// as the empty session, which the state machine treats as "no interview
// in progress".
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func sessionKey(sessionID string) string { return keyPrefix + sessionID }

// Load reads the session for sessionID. A missing key is not an error:
// the zero session is returned.
func (s *Store) Load(ctx domain.Context, sessionID string) (domain.InterviewSession, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.InterviewSession{}, nil
	}
	if err != nil {
		return domain.InterviewSession{}, fmt.Errorf("op=session.load: %w", err)
	}
	var sess domain.InterviewSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		// A corrupt payload is unrecoverable; treat it as no session.
		return domain.InterviewSession{}, nil
	}
	return sess, nil
}

func (s *Store) Save(ctx domain.Context, sessionID string, sess domain.InterviewSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("op=session.save: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("op=session.save: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx domain.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("op=session.clear: %w", err)
	}
	return nil
}
