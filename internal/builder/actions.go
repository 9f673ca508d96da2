package builder

import "survey-builder-service/internal/domain"

// Action is one atomic mutation of the question list.
// This is a sealed interface - only the variants declared in this file implement it.
type Action interface {
	isAction()
}

// AddQuestion appends a blank text question. When ID is empty the reducer draws
// one from its generator; callers that need to select the new question
// generate the id up front.
type AddQuestion struct {
	ID string
}

// RemoveQuestion deletes a question. Absent ids are ignored.
type RemoveQuestion struct {
	ID string
}

// QuestionPatch lists the fields UpdateQuestion overwrites; nil fields are kept.
type QuestionPatch struct {
	Label    *string
	Required *bool
}

// UpdateQuestion merges a patch into a question.
type UpdateQuestion struct {
	ID    string
	Patch QuestionPatch
}

// ChangeType switches a question between text and multiple choice.
type ChangeType struct {
	ID   string
	Type domain.QuestionType
}

// AddOption appends a blank option. When OptionID is empty one is generated.
type AddOption struct {
	QuestionID string
	OptionID   string
}

// UpdateOption sets the text of an option.
type UpdateOption struct {
	QuestionID string
	OptionID   string
	Text       string
}

// RemoveOption deletes an option.
type RemoveOption struct {
	QuestionID string
	OptionID   string
}

// MoveUp swaps a question with its predecessor.
type MoveUp struct {
	ID string
}

// MoveDown swaps a question with its successor.
type MoveDown struct {
	ID string
}

func (AddQuestion) isAction()    {}
func (RemoveQuestion) isAction() {}
func (UpdateQuestion) isAction() {}
func (ChangeType) isAction()     {}
func (AddOption) isAction()      {}
func (UpdateOption) isAction()   {}
func (RemoveOption) isAction()   {}
func (MoveUp) isAction()         {}
func (MoveDown) isAction()       {}

// Canonical returns the value form of action. Pointer variants satisfy Action
// through the value receivers, so both spellings are accepted; a nil pointer
// yields nil.
func Canonical(action Action) Action {
	switch a := action.(type) {
	case *AddQuestion:
		if a != nil {
			return *a
		}
	case *RemoveQuestion:
		if a != nil {
			return *a
		}
	case *UpdateQuestion:
		if a != nil {
			return *a
		}
	case *ChangeType:
		if a != nil {
			return *a
		}
	case *AddOption:
		if a != nil {
			return *a
		}
	case *UpdateOption:
		if a != nil {
			return *a
		}
	case *RemoveOption:
		if a != nil {
			return *a
		}
	case *MoveUp:
		if a != nil {
			return *a
		}
	case *MoveDown:
		if a != nil {
			return *a
		}
	default:
		return action
	}
	return nil
}

// SetLabel is shorthand for an UpdateQuestion that only touches the label.
func SetLabel(id, label string) UpdateQuestion {
	return UpdateQuestion{ID: id, Patch: QuestionPatch{Label: &label}}
}

// SetRequired is shorthand for an UpdateQuestion that only touches the required flag.
func SetRequired(id string, required bool) UpdateQuestion {
	return UpdateQuestion{ID: id, Patch: QuestionPatch{Required: &required}}
}
