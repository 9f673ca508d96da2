package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Choice records the option picked for a multiple-choice question. OptionText is
// copied at selection time and does not follow later edits of the option.
type Choice struct {
	OptionID   string `json:"optionId"`
	OptionText string `json:"optionText"`
}

// Response is an answer value whose shape follows the owning question's type:
// a plain string for text questions, a Choice for multiple-choice questions.
type Response struct {
	kind   QuestionType
	text   string
	choice Choice
}

// TextResponse builds the answer to a free-text question.
func TextResponse(text string) Response {
	return Response{kind: QuestionTypeText, text: text}
}

// ChoiceResponse builds the answer to a multiple-choice question from the picked option.
func ChoiceResponse(opt Option) Response {
	return Response{kind: QuestionTypeMultipleChoice, choice: Choice{OptionID: opt.ID, OptionText: opt.Text}}
}

// Kind reports which question type the response shape belongs to.
func (r Response) Kind() QuestionType { return r.kind }

// Text returns the free-text answer.
func (r Response) Text() (string, bool) {
	return r.text, r.kind == QuestionTypeText
}

// Choice returns the recorded option.
func (r Response) Choice() (Choice, bool) {
	return r.choice, r.kind == QuestionTypeMultipleChoice
}

func (r Response) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case QuestionTypeText:
		return json.Marshal(r.text)
	case QuestionTypeMultipleChoice:
		return json.Marshal(r.choice)
	default:
		return nil, fmt.Errorf("marshal response: %w", ErrInvalidResponse)
	}
}

func (r *Response) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("unmarshal response: %w", ErrInvalidResponse)
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*r = Response{kind: QuestionTypeText, text: text}
		return nil
	case '{':
		var choice Choice
		if err := json.Unmarshal(trimmed, &choice); err != nil {
			return err
		}
		*r = Response{kind: QuestionTypeMultipleChoice, choice: choice}
		return nil
	default:
		return fmt.Errorf("unmarshal response: %w", ErrInvalidResponse)
	}
}

// Responses maps question ids to answers. A question without an entry is unanswered.
type Responses map[string]Response

// Lookup returns the answer recorded for a question, if any.
func (r Responses) Lookup(questionID string) (Response, bool) {
	resp, ok := r[questionID]
	return resp, ok
}

// Clone returns an independent copy of the map.
func (r Responses) Clone() Responses {
	out := make(Responses, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
