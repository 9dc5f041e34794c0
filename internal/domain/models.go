package domain

// Section identifies one of the two questionnaire sections.
type Section string

const (
	// SectionAnxiety is section A of the assessment.
	SectionAnxiety Section = "a"
	// SectionDepression is section B of the assessment.
	SectionDepression Section = "b"
)

// Question is a single prompt in the self-assessment. MaxValue is the
// highest selectable answer value (anxiety questions 0-4, depression 0-3).
type Question struct {
	Section     Section `json:"section"`
	Index       int     `json:"index"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MaxValue    int     `json:"maxValue"`
}

// AnswerKey addresses one recorded answer.
type AnswerKey struct {
	Section Section
	Index   int
}

// Level buckets the assessment percentage for suggestion-content lookup.
type Level string

const (
	LevelGenuine Level = "genuine"
	LevelMid     Level = "mid"
	LevelHigh    Level = "high"
)

// SectionEntry pairs a question title with its recorded answer. Entries
// always follow the original question order, not answering order.
type SectionEntry struct {
	Question string `json:"question"`
	Answer   int    `json:"answer"`
}

// ResultPayload is the submitted assessment result. It is built once at
// submit time from the final answer snapshot and never mutated after.
type ResultPayload struct {
	UserID     string         `json:"userId,omitempty"`
	SectionA   []SectionEntry `json:"sectionA"`
	SectionB   []SectionEntry `json:"sectionB"`
	TotalScore int            `json:"totalScore"`
	Percentage int            `json:"percentage"`
	Diagnosis  string         `json:"diagnosis"`
	Level      Level          `json:"level"`
}

// SuggestionAction is a call-to-action link attached to level content.
type SuggestionAction struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Suggestions is the per-level content block rendered on the report.
type Suggestions struct {
	Title   string             `json:"title"`
	Bullets []string           `json:"bullets"`
	Actions []SuggestionAction `json:"actions"`
}

// Breakdown is the chart-ready split of the total score across sections.
// Remaining is the unreached share of the maximum score.
type Breakdown struct {
	Anxiety    int `json:"anxiety"`
	Depression int `json:"depression"`
	Remaining  int `json:"remaining"`
}

// Report is what the results view consumes: the immutable result plus
// whatever suggestions could be fetched. Suggestions is nil when the
// content fetch failed; the report still renders without it.
type Report struct {
	Result      ResultPayload `json:"result"`
	Breakdown   Breakdown     `json:"breakdown"`
	Suggestions *Suggestions  `json:"suggestions,omitempty"`
}
