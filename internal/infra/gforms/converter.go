package gforms

import (
	"fmt"

	"google.golang.org/api/forms/v1"
	"survey-builder-service/internal/builder"
	"survey-builder-service/internal/domain"
)

const choiceTypeRadio = "RADIO"

// BuildRequest turns a question list into the batch that creates one form
// item per question, in list order. Drafts are refused because Forms rejects
// blank titles and blank options.
func BuildRequest(questions []domain.Question) (*forms.BatchUpdateFormRequest, error) {
	if ids := builder.Incomplete(questions); len(ids) > 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrIncompleteQuestions, ids)
	}

	requests := make([]*forms.Request, 0, len(questions))
	for i, q := range questions {
		item, err := toItem(q)
		if err != nil {
			return nil, err
		}
		requests = append(requests, &forms.Request{
			CreateItem: &forms.CreateItemRequest{
				Item: item,
				Location: &forms.Location{
					Index:           int64(i),
					ForceSendFields: []string{"Index"},
				},
			},
		})
	}
	return &forms.BatchUpdateFormRequest{Requests: requests}, nil
}

func toItem(q domain.Question) (*forms.Item, error) {
	question := &forms.Question{Required: q.Required}
	switch q.Type {
	case domain.QuestionTypeText:
		// Options left over from a type switch are not exported.
		question.TextQuestion = &forms.TextQuestion{Paragraph: true}
	case domain.QuestionTypeMultipleChoice:
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %s: multiple choice without options", q.ID)
		}
		options := make([]*forms.Option, len(q.Options))
		for i, opt := range q.Options {
			options[i] = &forms.Option{Value: opt.Text}
		}
		question.ChoiceQuestion = &forms.ChoiceQuestion{Type: choiceTypeRadio, Options: options}
	default:
		return nil, fmt.Errorf("question %s: unsupported type %q", q.ID, q.Type)
	}
	return &forms.Item{
		Title:        q.Label,
		QuestionItem: &forms.QuestionItem{Question: question},
	}, nil
}
