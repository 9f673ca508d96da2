package domain

// QuestionType determines which fields of a Question are meaningful.
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeMultipleChoice QuestionType = "multipleChoice"
)

// Valid reports whether t is one of the supported question kinds.
func (t QuestionType) Valid() bool {
	return t == QuestionTypeText || t == QuestionTypeMultipleChoice
}

// Option is one selectable choice of a multiple-choice question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is one survey item. Options are only meaningful for multiple-choice
// questions but are kept when a question is switched back to text.
type Question struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Type     QuestionType `json:"type"`
	Required bool         `json:"required"`
	Options  []Option     `json:"options"`
}

// FindOption returns the option with the given id.
func (q Question) FindOption(optionID string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

// Template is a read-only survey used to seed new editing sessions.
type Template struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}
