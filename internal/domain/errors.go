package domain

import "errors"

var (
	// ErrSessionNotFound is returned when an assessment session has not been started.
	ErrSessionNotFound = errors.New("assessment session not found")
	// ErrUnanswered blocks forward navigation past a question with no recorded answer.
	ErrUnanswered = errors.New("current question not answered")
	// ErrAnswerOutOfRange indicates a value outside the question's valid choice range.
	ErrAnswerOutOfRange = errors.New("answer value out of range")
	// ErrNotAtLastQuestion indicates submit was invoked before the final question.
	ErrNotAtLastQuestion = errors.New("submit only available on the final question")
	// ErrAlreadySubmitted indicates the session has already produced its result.
	ErrAlreadySubmitted = errors.New("assessment already submitted")
	// ErrNotSubmitted indicates a report was requested before a successful submit.
	ErrNotSubmitted = errors.New("assessment not submitted yet")
	// ErrLevelNotFound indicates no suggestion content exists for a level.
	ErrLevelNotFound = errors.New("no suggestion content for level")
	// ErrSubmitRejected indicates the backend refused the result; the caller may retry.
	ErrSubmitRejected = errors.New("result submission rejected")
)
