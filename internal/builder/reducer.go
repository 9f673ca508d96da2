package builder

import (
	"fmt"

	"survey-builder-service/internal/domain"
)

// Reducer applies actions to a question list. Apart from drawing ids from its
// generator it is a pure function of (state, action).
type Reducer struct {
	ids IDGenerator
}

func NewReducer(ids IDGenerator) *Reducer {
	return &Reducer{ids: ids}
}

// NewQuestionID draws a question id that does not collide with any id in state.
func (r *Reducer) NewQuestionID(state []domain.Question) string {
	for {
		id := r.ids.QuestionID()
		if indexOf(state, id) < 0 {
			return id
		}
	}
}

func (r *Reducer) newOptionID(options []domain.Option) string {
	for {
		id := r.ids.OptionID()
		if optionIndex(options, id) < 0 {
			return id
		}
	}
}

// Apply returns the list that results from applying action to state. The input
// slice and the questions it holds are never modified; callers must not rely on
// identity surviving a call. Actions naming a missing question or option leave
// the list unchanged, as does a nil action.
func (r *Reducer) Apply(state []domain.Question, action Action) []domain.Question {
	switch a := Canonical(action).(type) {
	case nil:
		return clone(state)

	case AddQuestion:
		id := a.ID
		if id == "" || indexOf(state, id) >= 0 {
			id = r.NewQuestionID(state)
		}
		next := make([]domain.Question, len(state), len(state)+1)
		copy(next, state)
		return append(next, domain.Question{
			ID:      id,
			Type:    domain.QuestionTypeText,
			Options: []domain.Option{},
		})

	case RemoveQuestion:
		i := indexOf(state, a.ID)
		if i < 0 {
			return clone(state)
		}
		next := make([]domain.Question, 0, len(state)-1)
		next = append(next, state[:i]...)
		return append(next, state[i+1:]...)

	case UpdateQuestion:
		return r.update(state, a.ID, func(q domain.Question) domain.Question {
			if a.Patch.Label != nil {
				q.Label = *a.Patch.Label
			}
			if a.Patch.Required != nil {
				q.Required = *a.Patch.Required
			}
			return q
		})

	case ChangeType:
		return r.update(state, a.ID, func(q domain.Question) domain.Question {
			if !a.Type.Valid() {
				return q
			}
			q.Type = a.Type
			// Switching to text keeps the options so they come back on a later switch.
			if a.Type == domain.QuestionTypeMultipleChoice && len(q.Options) == 0 {
				first := domain.Option{ID: r.newOptionID(nil)}
				second := domain.Option{ID: r.newOptionID([]domain.Option{first})}
				q.Options = []domain.Option{first, second}
			}
			return q
		})

	case AddOption:
		return r.update(state, a.QuestionID, func(q domain.Question) domain.Question {
			id := a.OptionID
			if id == "" || optionIndex(q.Options, id) >= 0 {
				id = r.newOptionID(q.Options)
			}
			options := make([]domain.Option, len(q.Options), len(q.Options)+1)
			copy(options, q.Options)
			q.Options = append(options, domain.Option{ID: id})
			return q
		})

	case UpdateOption:
		return r.update(state, a.QuestionID, func(q domain.Question) domain.Question {
			j := optionIndex(q.Options, a.OptionID)
			if j < 0 {
				return q
			}
			options := cloneOptions(q.Options)
			options[j].Text = a.Text
			q.Options = options
			return q
		})

	case RemoveOption:
		return r.update(state, a.QuestionID, func(q domain.Question) domain.Question {
			j := optionIndex(q.Options, a.OptionID)
			if j < 0 {
				return q
			}
			options := make([]domain.Option, 0, len(q.Options)-1)
			options = append(options, q.Options[:j]...)
			q.Options = append(options, q.Options[j+1:]...)
			return q
		})

	case MoveUp:
		i := indexOf(state, a.ID)
		if i <= 0 {
			return clone(state)
		}
		return swap(state, i, i-1)

	case MoveDown:
		i := indexOf(state, a.ID)
		if i < 0 || i == len(state)-1 {
			return clone(state)
		}
		return swap(state, i, i+1)

	default:
		// Unreachable: Action is sealed to the variants above.
		panic(fmt.Sprintf("builder: unhandled action %T", action))
	}
}

func (r *Reducer) update(state []domain.Question, id string, fn func(domain.Question) domain.Question) []domain.Question {
	next := clone(state)
	i := indexOf(next, id)
	if i < 0 {
		return next
	}
	next[i] = fn(next[i])
	return next
}

func indexOf(state []domain.Question, id string) int {
	for i := range state {
		if state[i].ID == id {
			return i
		}
	}
	return -1
}

func optionIndex(options []domain.Option, id string) int {
	for i := range options {
		if options[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(state []domain.Question) []domain.Question {
	next := make([]domain.Question, len(state))
	copy(next, state)
	return next
}

func cloneOptions(options []domain.Option) []domain.Option {
	next := make([]domain.Option, len(options))
	copy(next, options)
	return next
}

func swap(state []domain.Question, i, j int) []domain.Question {
	next := clone(state)
	next[i], next[j] = next[j], next[i]
	return next
}

// Find returns the question with the given id.
func Find(state []domain.Question, id string) (domain.Question, bool) {
	i := indexOf(state, id)
	if i < 0 {
		return domain.Question{}, false
	}
	return state[i], true
}
