package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"survey-builder-service/internal/app"
	"survey-builder-service/internal/auth"
	"survey-builder-service/internal/builder"
	"survey-builder-service/internal/config"
	"survey-builder-service/internal/domain"
	"survey-builder-service/internal/infra/memory"
	pgloader "survey-builder-service/internal/infra/postgres"
	redisstore "survey-builder-service/internal/infra/redis"
	transport "survey-builder-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the survey builder server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.TemplateLoader = memory.NewStaticTemplateLoader(sampleTemplates())
	if pool != nil {
		loader = pgloader.NewTemplateLoader(pool)
	}

	templateTTL := config.TTLDuration(cfg.Templates.TTL, 10*time.Minute)
	var templates app.TemplateRepository
	if redisClient != nil {
		templates = redisstore.NewTemplateRepository(redisClient, loader, templateTTL)
	} else {
		templates = memory.NewTemplateRepository(loader, templateTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisstore.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}

	service := app.NewEditorService(store, templates, builder.NewUUIDGenerator(), app.SessionOptions{
		NoticeTimeout: config.TTLDuration(cfg.Builder.NoticeTimeout, app.DefaultNoticeTimeout),
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, auth.NewAuthenticator(cfg.Auth.JWTSecret)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if cfg.Auth.JWTSecret == "" {
		log.Printf("auth.jwtSecret not set, session API is open")
	}

	go func() {
		log.Printf("starting survey builder on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleTemplates mirrors the seed row of the survey_templates migration for runs without Postgres.
func sampleTemplates() map[string]domain.Template {
	return map[string]domain.Template{
		"starter": {
			ID:    "starter",
			Title: "Starter survey",
			Questions: []domain.Question{
				{
					ID:       "starter-q1",
					Label:    "What is your name?",
					Type:     domain.QuestionTypeText,
					Required: true,
					Options:  []domain.Option{},
				},
				{
					ID:    "starter-q2",
					Label: "How did you hear about us?",
					Type:  domain.QuestionTypeMultipleChoice,
					Options: []domain.Option{
						{ID: "starter-o1", Text: "A friend"},
						{ID: "starter-o2", Text: "Search"},
						{ID: "starter-o3", Text: "Social media"},
					},
				},
			},
		},
	}
}
