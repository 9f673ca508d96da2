package builder

import (
	"strings"

	"survey-builder-service/internal/domain"
)

// IsComplete reports whether a question is usable: a non-blank label and, for
// multiple choice, no blank option. The option count is not checked.
func IsComplete(q domain.Question) bool {
	if strings.TrimSpace(q.Label) == "" {
		return false
	}
	if q.Type != domain.QuestionTypeMultipleChoice {
		return true
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt.Text) == "" {
			return false
		}
	}
	return true
}

// AllComplete gates AddQuestion: every existing question must be complete.
func AllComplete(state []domain.Question) bool {
	for _, q := range state {
		if !IsComplete(q) {
			return false
		}
	}
	return true
}

// Incomplete lists the ids of draft questions in list order.
func Incomplete(state []domain.Question) []string {
	var ids []string
	for _, q := range state {
		if !IsComplete(q) {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// ValidSelection re-derives the selected question after the list changed: the
// previous id if it still exists, otherwise the first question, otherwise "".
func ValidSelection(state []domain.Question, selected string) string {
	if selected != "" && indexOf(state, selected) >= 0 {
		return selected
	}
	if len(state) > 0 {
		return state[0].ID
	}
	return ""
}
