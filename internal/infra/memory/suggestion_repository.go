package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"healing-companion-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// SuggestionLoader fetches level content from a backing store (Postgres,
// the remote backend, or a static map).
type SuggestionLoader interface {
	LoadSuggestions(ctx context.Context, level domain.Level) (domain.Suggestions, error)
}

// SuggestionRepository caches level content with TTL to avoid repeated
// loader hits. Content rarely changes; cache misses are collapsed with
// singleflight.
type SuggestionRepository struct {
	loader SuggestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[domain.Level]cachedSuggestions
}

type cachedSuggestions struct {
	content   domain.Suggestions
	expiresAt time.Time
}

func NewSuggestionRepository(loader SuggestionLoader, ttl time.Duration) *SuggestionRepository {
	return &SuggestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.Level]cachedSuggestions),
	}
}

func (r *SuggestionRepository) GetSuggestions(ctx context.Context, level domain.Level) (domain.Suggestions, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[level]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.content, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(string(level), func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[level]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.content, nil
		}
		r.mu.RUnlock()

		content, err := r.loader.LoadSuggestions(ctx, level)
		if err != nil {
			return domain.Suggestions{}, err
		}

		r.mu.Lock()
		r.cache[level] = cachedSuggestions{
			content:   content,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return content, nil
	})
	if err != nil {
		return domain.Suggestions{}, err
	}
	return result.(domain.Suggestions), nil
}

// StaticSuggestionLoader serves a fixed content map (defaults/tests).
type StaticSuggestionLoader struct {
	content map[domain.Level]domain.Suggestions
}

func NewStaticSuggestionLoader(content map[domain.Level]domain.Suggestions) *StaticSuggestionLoader {
	return &StaticSuggestionLoader{content: content}
}

func (l *StaticSuggestionLoader) LoadSuggestions(_ context.Context, level domain.Level) (domain.Suggestions, error) {
	if content, ok := l.content[level]; ok {
		return content, nil
	}
	return domain.Suggestions{}, domain.ErrLevelNotFound
}

func (r *SuggestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
