package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"survey-builder-service/internal/domain"
)

// TemplateLoader fetches seed surveys from a backing store (e.g., Postgres).
type TemplateLoader interface {
	LoadTemplate(ctx context.Context, templateID string) (domain.Template, error)
}

// TemplateRepository caches templates in Redis and falls back to a loader on cache miss.
// Templates are stored as JSON: SET survey:template:{templateID} {json} EX ttl
type TemplateRepository struct {
	client *redis.Client
	loader TemplateLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewTemplateRepository(client *redis.Client, loader TemplateLoader, ttl time.Duration) *TemplateRepository {
	return &TemplateRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *TemplateRepository) GetTemplate(ctx context.Context, templateID string) (domain.Template, error) {
	if tmpl, ok := r.cached(ctx, templateID); ok {
		return tmpl, nil
	}

	result, err, _ := r.sf.Do(templateID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if tmpl, ok := r.cached(ctx, templateID); ok {
			return tmpl, nil
		}

		tmpl, err := r.loader.LoadTemplate(ctx, templateID)
		if err != nil {
			return domain.Template{}, err
		}

		data, err := json.Marshal(tmpl)
		if err != nil {
			return domain.Template{}, fmt.Errorf("marshal template: %w", err)
		}
		_ = r.client.Set(ctx, r.key(templateID), data, r.ttlWithJitter()).Err()
		return tmpl, nil
	})
	if err != nil {
		return domain.Template{}, err
	}
	return result.(domain.Template), nil
}

// Invalidate drops a cached template so the next read goes to the loader.
func (r *TemplateRepository) Invalidate(ctx context.Context, templateID string) error {
	return r.client.Del(ctx, r.key(templateID)).Err()
}

func (r *TemplateRepository) cached(ctx context.Context, templateID string) (domain.Template, bool) {
	data, err := r.client.Get(ctx, r.key(templateID)).Bytes()
	if err != nil {
		// redis.Nil is a plain miss; other errors also fall through to the loader.
		return domain.Template{}, false
	}
	var tmpl domain.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return domain.Template{}, false
	}
	return tmpl, true
}

func (r *TemplateRepository) key(templateID string) string {
	return "survey:template:" + templateID
}

func (r *TemplateRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
