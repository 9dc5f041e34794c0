package memory

import (
	"context"
	"testing"

	"healing-companion-service/internal/domain"
)

func TestResultStoreSaves(t *testing.T) {
	store := NewResultStore()

	err := store.SaveResult(context.Background(), domain.ResultPayload{
		UserID:     "u1",
		TotalScore: 17,
		Percentage: 49,
		Level:      domain.LevelGenuine,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	results := store.Results()
	if len(results) != 1 || results[0].UserID != "u1" {
		t.Fatalf("expected one stored result for u1, got %+v", results)
	}
}
