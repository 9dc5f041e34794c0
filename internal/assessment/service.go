package assessment

import (
	"context"
	"fmt"
	"time"

	"healing-companion-service/internal/domain"
)

// SessionRepository abstracts how assessment sessions are stored
// (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(sessionID, userID string) *Session
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// AnswerJournal is optionally implemented by session stores that persist
// answers outside the process. Persistence is best-effort; the in-memory
// session remains the source of truth.
type AnswerJournal interface {
	RecordAnswer(ctx context.Context, sessionID string, key domain.AnswerKey, value int)
}

// SubmissionGateway is the external collaborator that persists results and
// serves level-keyed suggestion content. Implementations own timeout and
// retry policy; the core only distinguishes success from failure.
type SubmissionGateway interface {
	SubmitResult(ctx context.Context, payload domain.ResultPayload) error
	FetchSuggestions(ctx context.Context, level domain.Level) (domain.Suggestions, error)
}

// Service contains the questionnaire use cases.
type Service struct {
	survey   Survey
	sessions SessionRepository
	gateway  SubmissionGateway
}

func NewService(survey Survey, sessions SessionRepository, gateway SubmissionGateway) *Service {
	return &Service{survey: survey, sessions: sessions, gateway: gateway}
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id, userID string, survey Survey) *Session {
	return newSession(id, userID, survey)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id, userID string, survey Survey, now func() time.Time) *Session {
	return newSessionWithClock(id, userID, survey, now)
}

// Start registers or resumes a questionnaire session and returns the
// current question.
func (s *Service) Start(sessionID, userID string) QuestionView {
	session := s.sessions.GetOrCreate(sessionID, userID)
	return session.view()
}

// Current returns the current question without changing state.
func (s *Service) Current(sessionID string) (QuestionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return QuestionView{}, domain.ErrSessionNotFound
	}
	return session.view(), nil
}

// Answer records a value for the session's current question.
func (s *Service) Answer(ctx context.Context, sessionID string, value int) (QuestionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return QuestionView{}, domain.ErrSessionNotFound
	}
	key, err := session.answer(value)
	if err != nil {
		return session.view(), err
	}
	if journal, ok := s.sessions.(AnswerJournal); ok {
		journal.RecordAnswer(ctx, sessionID, key, value)
	}
	return session.view(), nil
}

// Next advances the session. On validation failure the returned view
// carries the transient error message and the position is unchanged.
func (s *Service) Next(sessionID string) (QuestionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return QuestionView{}, domain.ErrSessionNotFound
	}
	err := session.next()
	return session.view(), err
}

// Previous moves the session one question back.
func (s *Service) Previous(sessionID string) (QuestionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return QuestionView{}, domain.ErrSessionNotFound
	}
	session.previous()
	return session.view(), nil
}

// Submit scores the session and hands the result to the gateway. On
// submission failure the session stays on the final question with its
// answers intact, so the user can retry. On success the suggestion fetch is
// attempted; its failure degrades to a report without a suggestions block.
func (s *Service) Submit(ctx context.Context, sessionID string) (domain.Report, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Report{}, domain.ErrSessionNotFound
	}

	payload, err := session.buildPayload()
	if err != nil {
		return domain.Report{}, err
	}

	if err := s.gateway.SubmitResult(ctx, payload); err != nil {
		session.setError("Server error. Please try again.")
		return domain.Report{}, fmt.Errorf("submit result: %w", err)
	}

	report := domain.Report{
		Result:    payload,
		Breakdown: SectionBreakdown(payload),
	}
	if suggestions, err := s.gateway.FetchSuggestions(ctx, payload.Level); err == nil {
		report.Suggestions = &suggestions
	}

	session.markSubmitted(report)
	return report, nil
}

// Report returns the stored report of a submitted session.
func (s *Service) Report(sessionID string) (domain.Report, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Report{}, domain.ErrSessionNotFound
	}
	return session.reportSnapshot()
}

// End discards a session. The report is owned by the results view for its
// lifetime only; navigating away abandons it.
func (s *Service) End(sessionID string) {
	s.sessions.Delete(sessionID)
}

// Survey exposes the question bank backing this service.
func (s *Service) Survey() Survey {
	return s.survey
}
