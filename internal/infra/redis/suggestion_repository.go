package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"healing-companion-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// SuggestionLoader fetches level content from a backing store (Postgres,
// the remote backend, or a static map).
type SuggestionLoader interface {
	LoadSuggestions(ctx context.Context, level domain.Level) (domain.Suggestions, error)
}

// SuggestionRepository caches level content in Redis as JSON
// (SET content:level:{level}) and falls back to a loader on cache miss.
type SuggestionRepository struct {
	client *redis.Client
	loader SuggestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewSuggestionRepository(client *redis.Client, loader SuggestionLoader, ttl time.Duration) *SuggestionRepository {
	return &SuggestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *SuggestionRepository) GetSuggestions(ctx context.Context, level domain.Level) (domain.Suggestions, error) {
	key := r.contentKey(level)

	if raw, err := r.client.Get(ctx, key).Result(); err == nil {
		var content domain.Suggestions
		if err := json.Unmarshal([]byte(raw), &content); err == nil {
			return content, nil
		}
	}

	result, err, _ := r.sf.Do(string(level), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Result(); err == nil {
			var content domain.Suggestions
			if err := json.Unmarshal([]byte(raw), &content); err == nil {
				return content, nil
			}
		}

		content, err := r.loader.LoadSuggestions(ctx, level)
		if err != nil {
			return domain.Suggestions{}, err
		}

		if data, err := json.Marshal(content); err == nil {
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return content, nil
	})
	if err != nil {
		return domain.Suggestions{}, err
	}
	return result.(domain.Suggestions), nil
}

func (r *SuggestionRepository) contentKey(level domain.Level) string {
	return "content:level:" + string(level)
}

func (r *SuggestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
