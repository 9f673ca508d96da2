package gforms

import (
	"errors"
	"testing"

	"survey-builder-service/internal/domain"
)

func TestBuildRequestKeepsOrderAndShape(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Label: "Name", Type: domain.QuestionTypeText, Required: true,
			Options: []domain.Option{{ID: "stale", Text: ""}}},
		{ID: "q2", Label: "Team", Type: domain.QuestionTypeMultipleChoice,
			Options: []domain.Option{{ID: "o1", Text: "Platform"}, {ID: "o2", Text: "Product"}}},
	}

	req, err := BuildRequest(questions)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(req.Requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(req.Requests))
	}

	first := req.Requests[0].CreateItem
	if first.Location.Index != 0 || first.Item.Title != "Name" {
		t.Fatalf("unexpected first item %+v at %d", first.Item, first.Location.Index)
	}
	q1 := first.Item.QuestionItem.Question
	if !q1.Required || q1.TextQuestion == nil || q1.ChoiceQuestion != nil {
		t.Fatalf("expected required text question, got %+v", q1)
	}

	second := req.Requests[1].CreateItem
	choice := second.Item.QuestionItem.Question.ChoiceQuestion
	if second.Location.Index != 1 || choice == nil || choice.Type != "RADIO" {
		t.Fatalf("expected radio question at index 1, got %+v", second)
	}
	if len(choice.Options) != 2 || choice.Options[0].Value != "Platform" || choice.Options[1].Value != "Product" {
		t.Fatalf("unexpected options %+v", choice.Options)
	}
}

func TestBuildRequestRefusesDrafts(t *testing.T) {
	questions := []domain.Question{{ID: "q1", Label: " ", Type: domain.QuestionTypeText}}
	if _, err := BuildRequest(questions); !errors.Is(err, domain.ErrIncompleteQuestions) {
		t.Fatalf("expected ErrIncompleteQuestions, got %v", err)
	}
}

func TestBuildRequestRefusesChoiceWithoutOptions(t *testing.T) {
	questions := []domain.Question{{ID: "q1", Label: "Pick", Type: domain.QuestionTypeMultipleChoice}}
	if _, err := BuildRequest(questions); err == nil {
		t.Fatalf("expected error for option-less choice question")
	}
}
