package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healing-companion-service/internal/domain"
)

func TestRemoteClientSubmitsResult(t *testing.T) {
	var received domain.ResultPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/quiz/submit" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "saved"})
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, 5*time.Second)
	payload := domain.ResultPayload{
		UserID:     "u1",
		TotalScore: 20,
		Percentage: 57,
		Level:      domain.LevelMid,
	}
	if err := client.SaveResult(context.Background(), payload); err != nil {
		t.Fatalf("save result: %v", err)
	}
	if received.UserID != "u1" || received.Level != domain.LevelMid {
		t.Fatalf("backend received %+v", received)
	}
}

func TestRemoteClientSubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, 5*time.Second)
	err := client.SaveResult(context.Background(), domain.ResultPayload{})
	if !errors.Is(err, domain.ErrSubmitRejected) {
		t.Fatalf("expected ErrSubmitRejected, got %v", err)
	}
}

func TestRemoteClientLoadsSuggestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/content/high" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]any{
				"title":   "Reaching Out for Support",
				"bullets": []string{"Consider speaking with a mental health professional."},
				"actions": []map[string]string{{"label": "Talk to Someone", "href": "/contact"}},
			},
		})
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL, 5*time.Second)
	content, err := client.LoadSuggestions(context.Background(), domain.LevelHigh)
	if err != nil {
		t.Fatalf("load suggestions: %v", err)
	}
	if content.Title != "Reaching Out for Support" {
		t.Fatalf("unexpected title %q", content.Title)
	}
	if len(content.Actions) != 1 || content.Actions[0].Href != "/contact" {
		t.Fatalf("unexpected actions %+v", content.Actions)
	}

	if _, err := client.LoadSuggestions(context.Background(), domain.Level("bogus")); !errors.Is(err, domain.ErrLevelNotFound) {
		t.Fatalf("expected ErrLevelNotFound, got %v", err)
	}
}
