package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healing-companion-service/internal/assessment"
	"healing-companion-service/internal/config"
	"healing-companion-service/internal/gateway"
	"healing-companion-service/internal/infra/memory"
	pginfra "healing-companion-service/internal/infra/postgres"
	redisinfra "healing-companion-service/internal/infra/redis"
	transport "healing-companion-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the assessment server",
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
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	survey := assessment.DefaultSurvey()

	// Suggestion content and result persistence both prefer the remote
	// backend, then Postgres, then the built-in in-memory fallbacks.
	var loader memory.SuggestionLoader = memory.NewStaticSuggestionLoader(assessment.DefaultContent())
	var sink gateway.ResultSink
	switch {
	case cfg.Backend.URL != "":
		remote := gateway.NewRemoteClient(cfg.Backend.URL, config.TTLDuration(cfg.Backend.Timeout, 10*time.Second))
		loader = remote
		sink = remote
	case pool != nil:
		loader = pginfra.NewSuggestionLoader(pool)
		sink = pginfra.NewResultStore(pool)
	default:
		sink = memory.NewResultStore()
	}

	contentTTL := config.TTLDuration(cfg.Content.TTL, 10*time.Minute)
	var content gateway.SuggestionSource
	if redisClient != nil {
		content = redisinfra.NewSuggestionRepository(redisClient, loader, contentTTL)
	} else {
		content = memory.NewSuggestionRepository(loader, contentTTL)
	}

	var store assessment.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, survey, redisTTL)
	} else {
		store = memory.NewSessionStore(survey)
	}

	service := assessment.NewService(survey, store, gateway.New(sink, content))
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting assessment service on :%s", finalPort)
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
