package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"healing-companion-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResultStore persists submitted assessment results as JSONB rows.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) SaveResult(ctx context.Context, payload domain.ResultPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessment_results (user_id, level, percentage, data) VALUES ($1, $2, $3, $4)`,
		payload.UserID, string(payload.Level), payload.Percentage, data)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}
