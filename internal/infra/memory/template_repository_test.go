package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"survey-builder-service/internal/domain"
)

func TestTemplateRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		TemplateLoader: NewStaticTemplateLoader(map[string]domain.Template{
			"onboarding": sampleTemplate(),
		}),
	}
	repo := NewTemplateRepository(loader, time.Minute)

	if _, err := repo.GetTemplate(context.Background(), "onboarding"); err != nil {
		t.Fatalf("get template: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetTemplate(context.Background(), "onboarding"); err != nil {
		t.Fatalf("get template 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestTemplateRepositoryExpires(t *testing.T) {
	loader := &countingLoader{
		TemplateLoader: NewStaticTemplateLoader(map[string]domain.Template{
			"onboarding": sampleTemplate(),
		}),
	}
	repo := NewTemplateRepository(loader, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetTemplate(context.Background(), "onboarding")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetTemplate(context.Background(), "onboarding")

	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestTemplateRepositoryMissing(t *testing.T) {
	repo := NewTemplateRepository(NewStaticTemplateLoader(nil), time.Minute)
	if _, err := repo.GetTemplate(context.Background(), "nope"); !errors.Is(err, domain.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

type countingLoader struct {
	TemplateLoader
	calls int
}

func (l *countingLoader) LoadTemplate(ctx context.Context, templateID string) (domain.Template, error) {
	l.calls++
	return l.TemplateLoader.LoadTemplate(ctx, templateID)
}

func sampleTemplate() domain.Template {
	return domain.Template{
		ID:    "onboarding",
		Title: "Onboarding",
		Questions: []domain.Question{
			{
				ID:      "q1",
				Label:   "What is your name?",
				Type:    domain.QuestionTypeText,
				Options: []domain.Option{},
			},
			{
				ID:    "q2",
				Label: "Pick a team",
				Type:  domain.QuestionTypeMultipleChoice,
				Options: []domain.Option{
					{ID: "o1", Text: "Platform"},
					{ID: "o2", Text: "Product"},
				},
			},
		},
	}
}
