package assessment

import "healing-companion-service/internal/domain"

const (
	anxietyMaxValue    = 4
	depressionMaxValue = 3
)

// Choice labels are part of the client contract. Their lengths are tied to
// the section max values (5 choices for anxiety, 4 for depression) and must
// change together with them.
var (
	anxietyLabels    = []string{"Not at all", "Mild", "Moderate", "Severe", "Extremely"}
	depressionLabels = []string{"Not at all", "Sometimes", "Often", "Always"}
)

// Labels returns the fixed choice labels for a section. Index i labels
// answer value i.
func Labels(section domain.Section) []string {
	if section == domain.SectionDepression {
		return depressionLabels
	}
	return anxietyLabels
}

// Survey is the fixed question bank for both sections, defined at process start.
type Survey struct {
	SectionA []domain.Question
	SectionB []domain.Question
}

// DefaultSurvey returns the built-in anxiety/depression questionnaire.
func DefaultSurvey() Survey {
	return Survey{
		SectionA: buildSection(domain.SectionAnxiety, anxietyMaxValue, [][2]string{
			{"Anxious Mood", "Worries, anticipation of the worst, irritability."},
			{"Tension", "Feelings of tension, restlessness, or difficulty relaxing."},
			{"Fear of Situations", "Do you experience fear in public spaces, crowds, or being alone?"},
			{"Sleep Difficulties", "Trouble falling asleep, broken sleep, or waking up tired?"},
			{"Physical Symptoms", "Racing heart, sweating, trembling, or shortness of breath?"},
		}),
		SectionB: buildSection(domain.SectionDepression, depressionMaxValue, [][2]string{
			{"Mood", "Feeling sad, empty, or hopeless?"},
			{"Interest and Pleasure", "Lost interest in things you usually enjoy?"},
			{"Energy Levels", "Do you feel fatigued or low energy?"},
			{"Self-Worth", "Do you feel worthless or guilty often?"},
			{"Future Outlook", "Do you feel hopeful or pessimistic about the future?"},
		}),
	}
}

func buildSection(section domain.Section, maxValue int, items [][2]string) []domain.Question {
	questions := make([]domain.Question, 0, len(items))
	for i, item := range items {
		questions = append(questions, domain.Question{
			Section:     section,
			Index:       i,
			Title:       item[0],
			Description: item[1],
			MaxValue:    maxValue,
		})
	}
	return questions
}

// Questions returns the ordered questions of one section.
func (s Survey) Questions(section domain.Section) []domain.Question {
	if section == domain.SectionDepression {
		return s.SectionB
	}
	return s.SectionA
}

// Question looks up a question by position.
func (s Survey) Question(section domain.Section, index int) (domain.Question, bool) {
	questions := s.Questions(section)
	if index < 0 || index >= len(questions) {
		return domain.Question{}, false
	}
	return questions[index], true
}

// TotalQuestions is the number of questions across both sections.
func (s Survey) TotalQuestions() int {
	return len(s.SectionA) + len(s.SectionB)
}

// MaxScore is the highest achievable total score.
func (s Survey) MaxScore() int {
	return len(s.SectionA)*anxietyMaxValue + len(s.SectionB)*depressionMaxValue
}
