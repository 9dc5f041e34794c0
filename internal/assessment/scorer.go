package assessment

import (
	"fmt"
	"math"

	"healing-companion-service/internal/domain"
)

// ComputeResult reduces a complete answer store into the submitted payload.
// It is pure and deterministic: identical inputs yield identical results.
// Every question must have a recorded answer; a missing key is a caller
// contract violation surfaced as ErrUnanswered, never a silent zero.
func ComputeResult(survey Survey, answers map[domain.AnswerKey]int, userID string) (domain.ResultPayload, error) {
	total := 0
	for _, section := range [][]domain.Question{survey.SectionA, survey.SectionB} {
		for _, q := range section {
			value, ok := answers[domain.AnswerKey{Section: q.Section, Index: q.Index}]
			if !ok {
				return domain.ResultPayload{}, fmt.Errorf("%w: %s-%d", domain.ErrUnanswered, q.Section, q.Index)
			}
			total += value
		}
	}

	percentage := int(math.Round(float64(total) * 100 / float64(survey.MaxScore())))

	return domain.ResultPayload{
		UserID:     userID,
		SectionA:   sectionEntries(survey.SectionA, answers),
		SectionB:   sectionEntries(survey.SectionB, answers),
		TotalScore: total,
		Percentage: percentage,
		Diagnosis:  DiagnosisFor(percentage),
		Level:      LevelFor(percentage),
	}, nil
}

// sectionEntries pairs questions with answers in original question order.
// Back/forward navigation can overwrite answers in any order; the output
// ordering must not depend on it.
func sectionEntries(questions []domain.Question, answers map[domain.AnswerKey]int) []domain.SectionEntry {
	entries := make([]domain.SectionEntry, 0, len(questions))
	for _, q := range questions {
		entries = append(entries, domain.SectionEntry{
			Question: q.Title,
			Answer:   answers[domain.AnswerKey{Section: q.Section, Index: q.Index}],
		})
	}
	return entries
}

// DiagnosisFor maps a percentage onto one of four diagnosis bands.
func DiagnosisFor(percentage int) string {
	switch {
	case percentage < 25:
		return "You appear to be in a good mental state"
	case percentage < 50:
		return "You might be experiencing mild stress or anxiety. Try mindfulness and self-care"
	case percentage < 75:
		return "You may be showing moderate signs of anxiety or depression. Consider talking with a professional"
	default:
		return "You might be going through high levels of emotional distress. Professional support is strongly recommended"
	}
}

// LevelFor collapses the diagnosis bands into the three content-lookup
// levels. The two bands below 50 both map to genuine; the cutoffs at 50 and
// 75 are shared with DiagnosisFor and drive the suggestion lookup, so they
// must not drift.
func LevelFor(percentage int) domain.Level {
	switch {
	case percentage >= 75:
		return domain.LevelHigh
	case percentage >= 50:
		return domain.LevelMid
	default:
		return domain.LevelGenuine
	}
}

// SectionBreakdown splits a payload into per-section sums plus the
// unreached remainder of the maximum score, ready for the report chart.
func SectionBreakdown(payload domain.ResultPayload) domain.Breakdown {
	aSum := 0
	for _, entry := range payload.SectionA {
		aSum += entry.Answer
	}
	bSum := 0
	for _, entry := range payload.SectionB {
		bSum += entry.Answer
	}
	maxScore := len(payload.SectionA)*anxietyMaxValue + len(payload.SectionB)*depressionMaxValue
	remaining := maxScore - aSum - bSum
	if remaining < 0 {
		remaining = 0
	}
	return domain.Breakdown{Anxiety: aSum, Depression: bSum, Remaining: remaining}
}
