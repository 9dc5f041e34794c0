package gateway

import (
	"context"

	"healing-companion-service/internal/domain"
)

// ResultSink persists submitted payloads (Postgres, memory, or the remote
// backend).
type ResultSink interface {
	SaveResult(ctx context.Context, payload domain.ResultPayload) error
}

// SuggestionSource serves level-keyed content, usually through a cache.
type SuggestionSource interface {
	GetSuggestions(ctx context.Context, level domain.Level) (domain.Suggestions, error)
}

// Gateway adapts a result sink and a suggestion source into the
// assessment.SubmissionGateway contract.
type Gateway struct {
	results ResultSink
	content SuggestionSource
}

func New(results ResultSink, content SuggestionSource) *Gateway {
	return &Gateway{results: results, content: content}
}

func (g *Gateway) SubmitResult(ctx context.Context, payload domain.ResultPayload) error {
	return g.results.SaveResult(ctx, payload)
}

func (g *Gateway) FetchSuggestions(ctx context.Context, level domain.Level) (domain.Suggestions, error) {
	return g.content.GetSuggestions(ctx, level)
}
