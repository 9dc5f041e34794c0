package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"healing-companion-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SuggestionLoader loads level content JSONB from Postgres.
type SuggestionLoader struct {
	pool *pgxpool.Pool
}

func NewSuggestionLoader(pool *pgxpool.Pool) *SuggestionLoader {
	return &SuggestionLoader{pool: pool}
}

func (l *SuggestionLoader) LoadSuggestions(ctx context.Context, level domain.Level) (domain.Suggestions, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM level_content WHERE level=$1`, string(level)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Suggestions{}, domain.ErrLevelNotFound
	}
	if err != nil {
		return domain.Suggestions{}, fmt.Errorf("load suggestions: %w", err)
	}
	var content domain.Suggestions
	if err := json.Unmarshal(raw, &content); err != nil {
		return domain.Suggestions{}, fmt.Errorf("unmarshal suggestions: %w", err)
	}
	return content, nil
}
