package memory

import (
	"context"
	"sync"

	"healing-companion-service/internal/domain"
)

// ResultStore keeps submitted results in memory. Useful for demos and
// tests; production deployments use the Postgres store or the remote
// backend instead.
type ResultStore struct {
	mu      sync.RWMutex
	results []domain.ResultPayload
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) SaveResult(_ context.Context, payload domain.ResultPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, payload)
	return nil
}

// Results returns a copy of everything saved so far.
func (s *ResultStore) Results() []domain.ResultPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ResultPayload, len(s.results))
	copy(out, s.results)
	return out
}
