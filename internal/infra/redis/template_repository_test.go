package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"survey-builder-service/internal/domain"
	"survey-builder-service/internal/infra/memory"
)

func TestTemplateRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		TemplateLoader: memory.NewStaticTemplateLoader(map[string]domain.Template{
			"onboarding": sampleTemplate(),
		}),
	}
	repo := NewTemplateRepository(client, loader, time.Minute)

	first, err := repo.GetTemplate(context.Background(), "onboarding")
	if err != nil {
		t.Fatalf("get template: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("survey:template:onboarding") {
		t.Fatalf("expected template cached in redis")
	}

	// Second call should hit cache, loader not incremented.
	second, err := repo.GetTemplate(context.Background(), "onboarding")
	if err != nil {
		t.Fatalf("get template 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(second.Questions) != len(first.Questions) || second.Questions[1].Options[1].Text != "Product" {
		t.Fatalf("cached template lost content: %+v", second)
	}

	if err := repo.Invalidate(context.Background(), "onboarding"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.GetTemplate(context.Background(), "onboarding")
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.TemplateLoader
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
			{ID: "q1", Label: "What is your name?", Type: domain.QuestionTypeText, Options: []domain.Option{}},
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

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
