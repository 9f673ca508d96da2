package gforms

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/option"
	"survey-builder-service/internal/domain"
)

// Published identifies a created form.
type Published struct {
	FormID       string
	ResponderURI string
}

// Publisher creates Google Forms from question lists.
type Publisher struct {
	service *forms.Service
}

func NewPublisher(service *forms.Service) *Publisher {
	return &Publisher{service: service}
}

// NewService builds a Forms client from a service account / OAuth JSON file,
// or from application default credentials when credentialsFile is empty.
func NewService(ctx context.Context, credentialsFile string) (*forms.Service, error) {
	if credentialsFile == "" {
		client, err := google.DefaultClient(ctx, forms.FormsBodyScope)
		if err != nil {
			return nil, fmt.Errorf("default credentials: %w", err)
		}
		return forms.NewService(ctx, option.WithHTTPClient(client))
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, forms.FormsBodyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return forms.NewService(ctx, option.WithCredentials(creds))
}

// Publish creates an empty form titled title and fills it with the questions.
// Forms only accepts the title on create; items go through a batch update.
func (p *Publisher) Publish(ctx context.Context, title string, questions []domain.Question) (Published, error) {
	batch, err := BuildRequest(questions)
	if err != nil {
		return Published{}, err
	}

	created, err := p.service.Forms.Create(&forms.Form{
		Info: &forms.Info{Title: title, DocumentTitle: title},
	}).Context(ctx).Do()
	if err != nil {
		return Published{}, fmt.Errorf("create form: %w", err)
	}

	if len(batch.Requests) > 0 {
		if _, err := p.service.Forms.BatchUpdate(created.FormId, batch).Context(ctx).Do(); err != nil {
			return Published{}, fmt.Errorf("add questions to form %s: %w", created.FormId, err)
		}
	}
	return Published{FormID: created.FormId, ResponderURI: created.ResponderUri}, nil
}
