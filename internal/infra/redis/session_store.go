package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"healing-companion-service/internal/assessment"
	"healing-companion-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of SessionRepository.
// Notes:
//   - It keeps a local in-memory map of sessions; the state machine itself
//     runs in-process and Redis holds a liveness marker plus an answer hash
//     mirror per session.
//   - The answer hash uses the same "a-0" field keys the original answer
//     store used, so a session's progress can be inspected externally.
type SessionStore struct {
	client   *redis.Client
	survey   assessment.Survey
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*assessment.Session
}

func NewSessionStore(client *redis.Client, survey assessment.Survey, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		survey:   survey,
		ttl:      ttl,
		sessions: make(map[string]*assessment.Session),
	}
}

func (s *SessionStore) GetOrCreate(sessionID, userID string) *assessment.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	session := assessment.NewSession(sessionID, userID, s.survey)
	s.sessions[sessionID] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(sessionID), "1", s.ttl).Err()
	return session
}

func (s *SessionStore) Get(sessionID string) (*assessment.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID), s.answersKey(sessionID)).Err()
}

// RecordAnswer mirrors a recorded answer into the session's Redis hash.
// Best-effort; the in-memory session stays authoritative.
func (s *SessionStore) RecordAnswer(ctx context.Context, sessionID string, key domain.AnswerKey, value int) {
	field := fmt.Sprintf("%s-%d", key.Section, key.Index)
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, s.answersKey(sessionID), field, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.answersKey(sessionID), s.ttl)
	}
	_, _ = pipe.Exec(ctx)
}

func (s *SessionStore) key(sessionID string) string {
	return "assessment:session:" + sessionID
}

func (s *SessionStore) answersKey(sessionID string) string {
	return "assessment:session:" + sessionID + ":answers"
}
