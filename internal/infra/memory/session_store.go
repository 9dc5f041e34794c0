package memory

import (
	"sync"

	"healing-companion-service/internal/assessment"
)

// SessionStore is an in-memory implementation of assessment.SessionRepository.
type SessionStore struct {
	survey   assessment.Survey
	mu       sync.RWMutex
	sessions map[string]*assessment.Session
}

func NewSessionStore(survey assessment.Survey) *SessionStore {
	return &SessionStore{
		survey:   survey,
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
}
