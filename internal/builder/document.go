package builder

import (
	"encoding/json"
	"fmt"

	"survey-builder-service/internal/domain"
)

// Document is the export form of a question list: {"questions": [...]}.
type Document struct {
	Questions []domain.Question `json:"questions"`
}

// MarshalDocument serializes the list in order. Options are always written as
// an array so the output parses back into an equal list.
func MarshalDocument(state []domain.Question) ([]byte, error) {
	doc := Document{Questions: make([]domain.Question, len(state))}
	for i, q := range state {
		if q.Options == nil {
			q.Options = []domain.Option{}
		}
		doc.Questions[i] = q
	}
	return json.Marshal(doc)
}

// ParseDocument loads an exported list. Unknown question types and duplicate
// ids are rejected with domain.ErrInvalidDocument.
//
// A missing or null "questions" or "options" value reads as an empty list, so
// such input re-marshals with [] in its place. Output of MarshalDocument never
// contains either and round-trips byte for byte.
func ParseDocument(data []byte) ([]domain.Question, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	questions := doc.Questions
	if questions == nil {
		questions = []domain.Question{}
	}
	if err := CheckQuestions(questions); err != nil {
		return nil, err
	}
	for i := range questions {
		if questions[i].Options == nil {
			questions[i].Options = []domain.Option{}
		}
	}
	return questions, nil
}

// CheckQuestions verifies the identifier and type invariants of a list that
// did not come from the reducer, such as a template or an imported document.
func CheckQuestions(questions []domain.Question) error {
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", domain.ErrInvalidDocument, i)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %q", domain.ErrInvalidDocument, q.ID)
		}
		seen[q.ID] = struct{}{}
		if !q.Type.Valid() {
			return fmt.Errorf("%w: question %q has unknown type %q", domain.ErrInvalidDocument, q.ID, q.Type)
		}
		opts := make(map[string]struct{}, len(q.Options))
		for _, opt := range q.Options {
			if opt.ID == "" {
				return fmt.Errorf("%w: question %q has an option without id", domain.ErrInvalidDocument, q.ID)
			}
			if _, dup := opts[opt.ID]; dup {
				return fmt.Errorf("%w: question %q repeats option id %q", domain.ErrInvalidDocument, q.ID, opt.ID)
			}
			opts[opt.ID] = struct{}{}
		}
	}
	return nil
}

// MarshalResponses serializes answers as {questionId: string | {optionId, optionText}}.
func MarshalResponses(responses domain.Responses) ([]byte, error) {
	if responses == nil {
		responses = domain.Responses{}
	}
	return json.Marshal(responses)
}

// ParseResponses loads a serialized response map.
func ParseResponses(data []byte) (domain.Responses, error) {
	responses := domain.Responses{}
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("parse responses: %w", err)
	}
	return responses, nil
}
