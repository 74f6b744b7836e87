package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trivia-score-service/internal/app"
	"trivia-score-service/internal/config"
	"trivia-score-service/internal/domain"
	"trivia-score-service/internal/infra/memory"
	pgstore "trivia-score-service/internal/infra/postgres"
	redisstore "trivia-score-service/internal/infra/redis"
	transport "trivia-score-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the scoring server",
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

	policy, err := cfg.TierPolicy()
	if err != nil {
		return err
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

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var responseLog app.ResponseLog = memory.NewResponseLog()
	var questionLoader memory.QuestionLoader = memory.NewStaticQuestionLoader(sampleQuestions())
	if pool != nil {
		responseLog = pgstore.NewResponseLog(pool)
		questionLoader = pgstore.NewQuestionLoader(pool)
	}

	// Leaderboard and tiers prefer Redis, then Postgres, then memory. The
	// response log stays in Postgres/memory; it is the source of truth the
	// derived state rebuilds from.
	var leaderboard app.LeaderboardStore
	var tiers app.TierStore
	switch {
	case redisClient != nil:
		leaderboard = redisstore.NewLeaderboard(redisClient)
		tiers = redisstore.NewTierStore(redisClient)
	case pool != nil:
		leaderboard = pgstore.NewLeaderboard(pool)
		tiers = pgstore.NewTierStore(pool)
	default:
		leaderboard = memory.NewLeaderboard()
		tiers = memory.NewTierStore()
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	questions := memory.NewQuestionBank(questionLoader, questionTTL)

	classifier := app.NewTierClassifier(responseLog, tiers, policy)
	feed := app.NewLeaderboardFeed()
	service := app.NewScoreService(responseLog, leaderboard, tiers, classifier, questions, feed, cfg.LeaderboardLimit(10))

	handler := transport.NewHandler(service)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("/ws/leaderboard", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting score service on :%s", finalPort)
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

// sampleQuestions seeds the in-memory bank when no Postgres is configured.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:   1,
			Type: "multiple_choice",
			Text: "Which planet is closest to the sun?",
			Answers: []domain.Answer{
				{ID: 1, Correct: true, Text: "Mercury", Feedback: "Correct, Mercury orbits closest."},
				{ID: 2, Correct: false, Text: "Venus", Feedback: "Venus is second from the sun."},
				{ID: 3, Correct: false, Text: "Mars", Feedback: "Mars is fourth from the sun."},
			},
		},
		{
			ID:   2,
			Type: "true_false",
			Text: "The Pacific is the largest ocean.",
			Answers: []domain.Answer{
				{ID: 4, Correct: true, Text: "True", Feedback: "It covers about a third of the surface."},
				{ID: 5, Correct: false, Text: "False", Feedback: "It is larger than the Atlantic."},
			},
		},
	}
}
