package assessment

import (
	"fmt"
	"math"
	"sync"
	"time"

	"healing-companion-service/internal/domain"
)

const (
	msgAnswerBeforeNext   = "Please select an answer before proceeding."
	msgAnswerBeforeSubmit = "Please select an answer before submitting."
)

// QuestionView is the presentation snapshot of the current position. It
// carries everything the question renderer needs: the prompt, the choice
// labels, the previously selected value (if any), derived progress, and the
// navigation affordances.
type QuestionView struct {
	Section       domain.Section `json:"section"`
	Index         int            `json:"index"`
	SectionTotal  int            `json:"sectionTotal"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Labels        []string       `json:"labels"`
	Selected      *int           `json:"selected,omitempty"`
	Progress      int            `json:"progress"`
	CanGoBack     bool           `json:"canGoBack"`
	FinalQuestion bool           `json:"finalQuestion"`
	Error         string         `json:"error,omitempty"`
}

// Session holds one user's answer store and navigation state. All state
// transitions are synchronous and guarded; a session is owned by a single
// questionnaire run and never shared across runs.
type Session struct {
	id        string
	userID    string
	survey    Survey
	createdAt time.Time
	now       func() time.Time

	mu        sync.RWMutex
	section   domain.Section
	index     int
	answers   map[domain.AnswerKey]int
	errMsg    string
	submitted bool
	report    domain.Report
}

func newSession(id, userID string, survey Survey) *Session {
	return newSessionWithClock(id, userID, survey, time.Now)
}

// newSessionWithClock allows deterministic timestamps in tests.
func newSessionWithClock(id, userID string, survey Survey, now func() time.Time) *Session {
	return &Session{
		id:        id,
		userID:    userID,
		survey:    survey,
		createdAt: now(),
		now:       now,
		section:   domain.SectionAnxiety,
		index:     0,
		answers:   make(map[domain.AnswerKey]int),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// answer records a value for the current question and clears any pending
// validation error. Values outside [0, MaxValue] are rejected: unlike the
// original single-page UI, a networked client can send anything.
func (s *Session) answer(value int) (domain.AnswerKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.survey.Question(s.section, s.index)
	if !ok {
		return domain.AnswerKey{}, fmt.Errorf("no question at %s-%d", s.section, s.index)
	}
	if value < 0 || value > question.MaxValue {
		return domain.AnswerKey{}, fmt.Errorf("%w: %d not in [0,%d]", domain.ErrAnswerOutOfRange, value, question.MaxValue)
	}

	key := domain.AnswerKey{Section: s.section, Index: s.index}
	s.answers[key] = value
	s.errMsg = ""
	return key, nil
}

// next advances to the following question. It fails validation, leaving the
// position untouched and setting a transient error, when the current
// question has no recorded answer.
func (s *Session) next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.answers[domain.AnswerKey{Section: s.section, Index: s.index}]; !ok {
		s.errMsg = msgAnswerBeforeNext
		return domain.ErrUnanswered
	}

	s.errMsg = ""
	if s.index+1 < len(s.survey.Questions(s.section)) {
		s.index++
		return nil
	}
	if s.section == domain.SectionAnxiety {
		s.section = domain.SectionDepression
		s.index = 0
	}
	// On the final depression question next is not offered; submit is the
	// only forward action, so this is a no-op.
	return nil
}

// previous moves one question back, crossing the section boundary from
// (b, 0) to the last anxiety question. At (a, 0) it is a no-op.
func (s *Session) previous() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errMsg = ""
	if s.index > 0 {
		s.index--
		return
	}
	if s.section == domain.SectionDepression {
		s.section = domain.SectionAnxiety
		s.index = len(s.survey.SectionA) - 1
	}
}

// buildPayload validates the terminal position and reduces the answer store
// into the immutable result. The session is left untouched so a failed
// submission can be retried.
func (s *Session) buildPayload() (domain.ResultPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitted {
		return domain.ResultPayload{}, domain.ErrAlreadySubmitted
	}
	if s.section != domain.SectionDepression || s.index != len(s.survey.SectionB)-1 {
		return domain.ResultPayload{}, domain.ErrNotAtLastQuestion
	}
	if _, ok := s.answers[domain.AnswerKey{Section: s.section, Index: s.index}]; !ok {
		s.errMsg = msgAnswerBeforeSubmit
		return domain.ResultPayload{}, domain.ErrUnanswered
	}

	return ComputeResult(s.survey, s.answers, s.userID)
}

// markSubmitted transitions the session into its terminal results state.
func (s *Session) markSubmitted(report domain.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = true
	s.report = report
	s.errMsg = ""
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// reportSnapshot returns the stored report after a successful submit.
func (s *Session) reportSnapshot() (domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.submitted {
		return domain.Report{}, domain.ErrNotSubmitted
	}
	return s.report, nil
}

// view renders the current position for the presentation layer.
func (s *Session) view() QuestionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	question, _ := s.survey.Question(s.section, s.index)
	v := QuestionView{
		Section:       s.section,
		Index:         s.index,
		SectionTotal:  len(s.survey.Questions(s.section)),
		Title:         question.Title,
		Description:   question.Description,
		Labels:        Labels(s.section),
		Progress:      s.progressLocked(),
		CanGoBack:     s.index > 0 || s.section == domain.SectionDepression,
		FinalQuestion: s.section == domain.SectionDepression && s.index == len(s.survey.SectionB)-1,
		Error:         s.errMsg,
	}
	if value, ok := s.answers[domain.AnswerKey{Section: s.section, Index: s.index}]; ok {
		selected := value
		v.Selected = &selected
	}
	return v
}

// progressLocked derives overall progress as a rounded percentage of
// questions reached, counting the whole anxiety section once in section B.
func (s *Session) progressLocked() int {
	position := s.index + 1
	if s.section == domain.SectionDepression {
		position += len(s.survey.SectionA)
	}
	return int(math.Round(float64(position) * 100 / float64(s.survey.TotalQuestions())))
}
