package assessment_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"healing-companion-service/internal/assessment"
	"healing-companion-service/internal/domain"
	"healing-companion-service/internal/infra/memory"
)

func TestStartReturnsFirstQuestion(t *testing.T) {
	service, _ := newTestService()

	view := service.Start("s1", "u1")
	if view.Section != domain.SectionAnxiety || view.Index != 0 {
		t.Fatalf("expected (a,0), got (%s,%d)", view.Section, view.Index)
	}
	if view.Progress != 10 {
		t.Fatalf("expected progress 10, got %d", view.Progress)
	}
	if view.CanGoBack || view.FinalQuestion {
		t.Fatalf("unexpected navigation affordances: %+v", view)
	}
	if len(view.Labels) != 5 {
		t.Fatalf("expected 5 anxiety labels, got %d", len(view.Labels))
	}
	if view.Title != "Anxious Mood" {
		t.Fatalf("expected first question title, got %q", view.Title)
	}
}

func TestNextBlockedWithoutAnswer(t *testing.T) {
	service, _ := newTestService()
	service.Start("s1", "u1")

	view, err := service.Next("s1")
	if !errors.Is(err, domain.ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered, got %v", err)
	}
	if view.Section != domain.SectionAnxiety || view.Index != 0 {
		t.Fatalf("expected position unchanged, got (%s,%d)", view.Section, view.Index)
	}
	if view.Error == "" {
		t.Fatalf("expected transient error message")
	}

	// Answering clears the error and unblocks.
	view, err = service.Answer(context.Background(), "s1", 2)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if view.Error != "" {
		t.Fatalf("expected error cleared, got %q", view.Error)
	}
	if view.Selected == nil || *view.Selected != 2 {
		t.Fatalf("expected selected value echoed, got %v", view.Selected)
	}
	if view, err = service.Next("s1"); err != nil {
		t.Fatalf("next: %v", err)
	}
	if view.Index != 1 {
		t.Fatalf("expected index 1, got %d", view.Index)
	}
}

func TestAnswerRejectsOutOfRange(t *testing.T) {
	service, _ := newTestService()
	service.Start("s1", "u1")

	if _, err := service.Answer(context.Background(), "s1", 5); !errors.Is(err, domain.ErrAnswerOutOfRange) {
		t.Fatalf("expected out-of-range for 5 on anxiety, got %v", err)
	}
	if _, err := service.Answer(context.Background(), "s1", -1); !errors.Is(err, domain.ErrAnswerOutOfRange) {
		t.Fatalf("expected out-of-range for -1, got %v", err)
	}
	if _, err := service.Answer(context.Background(), "s1", 4); err != nil {
		t.Fatalf("expected 4 accepted on anxiety, got %v", err)
	}
}

func TestSectionTransitionAndBack(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()
	service.Start("s1", "u1")

	// Answer through section A; Next from the last anxiety question lands
	// on the first depression question.
	for i := 0; i < 5; i++ {
		if _, err := service.Answer(ctx, "s1", 1); err != nil {
			t.Fatalf("answer a-%d: %v", i, err)
		}
		if _, err := service.Next("s1"); err != nil {
			t.Fatalf("next a-%d: %v", i, err)
		}
	}
	view, err := service.Current("s1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if view.Section != domain.SectionDepression || view.Index != 0 {
		t.Fatalf("expected (b,0), got (%s,%d)", view.Section, view.Index)
	}
	if len(view.Labels) != 4 {
		t.Fatalf("expected 4 depression labels, got %d", len(view.Labels))
	}
	if !view.CanGoBack {
		t.Fatalf("expected back navigation from (b,0)")
	}

	// Previous crosses the section boundary back to the last anxiety question.
	view, err = service.Previous("s1")
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if view.Section != domain.SectionAnxiety || view.Index != 4 {
		t.Fatalf("expected (a,4), got (%s,%d)", view.Section, view.Index)
	}
	if view.Selected == nil || *view.Selected != 1 {
		t.Fatalf("expected earlier answer visible, got %v", view.Selected)
	}

	// Walk back to the start; Previous at (a,0) is a no-op.
	for i := 0; i < 4; i++ {
		if _, err := service.Previous("s1"); err != nil {
			t.Fatalf("previous: %v", err)
		}
	}
	view, _ = service.Previous("s1")
	if view.Section != domain.SectionAnxiety || view.Index != 0 {
		t.Fatalf("expected (a,0) unchanged, got (%s,%d)", view.Section, view.Index)
	}
}

func TestProgressAcrossSections(t *testing.T) {
	service, _ := newTestService()
	view := service.Start("s1", "u1")
	if view.Progress != 10 {
		t.Fatalf("expected 10%% at (a,0), got %d", view.Progress)
	}

	answerThrough(t, service, "s1", 0, 0)
	view, err := service.Current("s1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if view.Section != domain.SectionDepression || view.Index != 4 {
		t.Fatalf("expected (b,4), got (%s,%d)", view.Section, view.Index)
	}
	if view.Progress != 100 {
		t.Fatalf("expected 100%% at (b,4), got %d", view.Progress)
	}
	if !view.FinalQuestion {
		t.Fatalf("expected final question flag at (b,4)")
	}
}

func TestSubmitOnlyAtLastQuestion(t *testing.T) {
	service, _ := newTestService()
	service.Start("s1", "u1")

	if _, err := service.Submit(context.Background(), "s1"); !errors.Is(err, domain.ErrNotAtLastQuestion) {
		t.Fatalf("expected ErrNotAtLastQuestion, got %v", err)
	}
}

func TestSubmitFlow(t *testing.T) {
	ctx := context.Background()
	service, gw := newTestService()
	service.Start("s1", "u1")
	answerThrough(t, service, "s1", 4, 3)

	report, err := service.Submit(ctx, "s1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if report.Result.TotalScore != 35 || report.Result.Percentage != 100 {
		t.Fatalf("expected 35/100%%, got %d/%d%%", report.Result.TotalScore, report.Result.Percentage)
	}
	if report.Result.Level != domain.LevelHigh {
		t.Fatalf("expected high, got %s", report.Result.Level)
	}
	if report.Breakdown.Anxiety != 20 || report.Breakdown.Depression != 15 || report.Breakdown.Remaining != 0 {
		t.Fatalf("unexpected breakdown %+v", report.Breakdown)
	}
	if report.Suggestions == nil || report.Suggestions.Title == "" {
		t.Fatalf("expected suggestions attached, got %+v", report.Suggestions)
	}
	if len(gw.submitted) != 1 || gw.submitted[0].UserID != "u1" {
		t.Fatalf("expected one submitted payload for u1, got %+v", gw.submitted)
	}

	// The report stays retrievable for the results view.
	stored, err := service.Report("s1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if stored.Result.TotalScore != 35 {
		t.Fatalf("expected stored report, got %+v", stored.Result)
	}
}

func TestSubmitOnFinalQuestionRequiresAnswer(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()
	service.Start("s2", "u1")
	answerThroughAllButLast(t, service, "s2", 1, 1)

	_, err := service.Submit(ctx, "s2")
	if !errors.Is(err, domain.ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered, got %v", err)
	}
	view, _ := service.Current("s2")
	if view.Error == "" {
		t.Fatalf("expected transient error message on submit validation")
	}
}

func TestSubmitFailureIsRetryable(t *testing.T) {
	ctx := context.Background()
	service, gw := newTestService()
	service.Start("s1", "u1")
	answerThrough(t, service, "s1", 2, 2)

	gw.submitErr = errors.New("backend down")
	if _, err := service.Submit(ctx, "s1"); err == nil {
		t.Fatalf("expected submit failure")
	}

	// Session must stay on the final question with all answers intact.
	view, err := service.Current("s1")
	if err != nil {
		t.Fatalf("expected session alive after failure, got %v", err)
	}
	if view.Section != domain.SectionDepression || view.Index != 4 {
		t.Fatalf("expected (b,4) preserved, got (%s,%d)", view.Section, view.Index)
	}
	if view.Selected == nil {
		t.Fatalf("expected answers preserved for retry")
	}

	gw.submitErr = nil
	report, err := service.Submit(ctx, "s1")
	if err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if report.Result.TotalScore != 20 {
		t.Fatalf("expected total 20 after retry, got %d", report.Result.TotalScore)
	}
}

func TestSuggestionFailureDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	service, gw := newTestService()
	service.Start("s1", "u1")
	answerThrough(t, service, "s1", 0, 0)

	gw.suggestErr = errors.New("content service down")
	report, err := service.Submit(ctx, "s1")
	if err != nil {
		t.Fatalf("submit should succeed without suggestions: %v", err)
	}
	if report.Suggestions != nil {
		t.Fatalf("expected no suggestions block, got %+v", report.Suggestions)
	}
	if report.Result.Level != domain.LevelGenuine {
		t.Fatalf("expected genuine, got %s", report.Result.Level)
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()
	service.Start("s1", "u1")
	answerThrough(t, service, "s1", 1, 1)

	if _, err := service.Submit(ctx, "s1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := service.Submit(ctx, "s1"); !errors.Is(err, domain.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestUnknownSession(t *testing.T) {
	service, _ := newTestService()
	if _, err := service.Current("nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := service.Submit(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

// answerThrough answers every question and stops on the final depression
// question with its answer recorded.
func answerThrough(t *testing.T, service *assessment.Service, sessionID string, aValue, bValue int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := service.Answer(ctx, sessionID, aValue); err != nil {
			t.Fatalf("answer a-%d: %v", i, err)
		}
		if _, err := service.Next(sessionID); err != nil {
			t.Fatalf("next a-%d: %v", i, err)
		}
	}
	for i := 0; i < 5; i++ {
		if _, err := service.Answer(ctx, sessionID, bValue); err != nil {
			t.Fatalf("answer b-%d: %v", i, err)
		}
		if i < 4 {
			if _, err := service.Next(sessionID); err != nil {
				t.Fatalf("next b-%d: %v", i, err)
			}
		}
	}
}

// answerThroughAllButLast leaves the final depression question unanswered.
func answerThroughAllButLast(t *testing.T, service *assessment.Service, sessionID string, aValue, bValue int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := service.Answer(ctx, sessionID, aValue); err != nil {
			t.Fatalf("answer a-%d: %v", i, err)
		}
		if _, err := service.Next(sessionID); err != nil {
			t.Fatalf("next a-%d: %v", i, err)
		}
	}
	for i := 0; i < 4; i++ {
		if _, err := service.Answer(ctx, sessionID, bValue); err != nil {
			t.Fatalf("answer b-%d: %v", i, err)
		}
		if _, err := service.Next(sessionID); err != nil {
			t.Fatalf("next b-%d: %v", i, err)
		}
	}
}

func newTestService() (*assessment.Service, *fakeGateway) {
	survey := assessment.DefaultSurvey()
	gw := &fakeGateway{content: assessment.DefaultContent()}
	return assessment.NewService(survey, memory.NewSessionStore(survey), gw), gw
}

type fakeGateway struct {
	mu         sync.Mutex
	submitted  []domain.ResultPayload
	submitErr  error
	suggestErr error
	content    map[domain.Level]domain.Suggestions
}

func (g *fakeGateway) SubmitResult(_ context.Context, payload domain.ResultPayload) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.submitErr != nil {
		return g.submitErr
	}
	g.submitted = append(g.submitted, payload)
	return nil
}

func (g *fakeGateway) FetchSuggestions(_ context.Context, level domain.Level) (domain.Suggestions, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.suggestErr != nil {
		return domain.Suggestions{}, g.suggestErr
	}
	if content, ok := g.content[level]; ok {
		return content, nil
	}
	return domain.Suggestions{}, domain.ErrLevelNotFound
}
