package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/api"
	"github.com/tcp_snm/quest/internal/config"
	"github.com/tcp_snm/quest/internal/database"
	"github.com/tcp_snm/quest/internal/service"
	"github.com/tcp_snm/quest/internal/service/evaluation_service"
	"github.com/tcp_snm/quest/internal/service/problem_service"
	"github.com/tcp_snm/quest/internal/service/progress_service"
	"github.com/tcp_snm/quest/internal/service/submission_service"
	"github.com/tcp_snm/quest/internal/service/user_service"
)

var (
	apiConfig *api.Api
	cfg       config.Config
)

// resources closed on shutdown
var (
	pool        *pgxpool.Pool
	redisClient *redis.Client
	kafkaWriter *kafka.Writer
	eventQueue  *submission_service.EventQueue
)

func initLogger() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	log.SetLevel(cfg.LogLevel)
}

func initDatabase() *pgxpool.Pool {
	if cfg.DBURL == "" {
		panic("dbURL not found")
	}

	// create a conneciton pool to the database
	p, err := pgxpool.New(context.Background(), cfg.DBURL)
	if err != nil {
		panic(err)
	}
	return p
}

func initProgressCache() progress_service.ProgressCache {
	if cfg.RedisURL == "" {
		log.Warn("redis url not found in environment. progress lists will not be cached")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		panic(err)
	}
	redisClient = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// the cache is optional, keep going without it
		log.Errorf("cannot reach redis, progress lists will not be cached, %v", err)
		redisClient.Close()
		redisClient = nil
		return nil
	}

	log.Info("connected to redis")
	return progress_service.NewRedisProgressCache(redisClient)
}

func initEventPublisher() submission_service.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		log.Warn("kafka brokers not found in environment. submission events will be dropped")
		return nil
	}

	kafkaWriter = submission_service.NewKafkaWriter(cfg.KafkaBrokers, cfg.SubmissionEventsTopic)
	eventQueue = &submission_service.EventQueue{
		Next:    &submission_service.KafkaEventPublisher{Writer: kafkaWriter},
		Workers: 2,
	}
	eventQueue.Start()

	log.Infof("publishing submission events to topic %s", cfg.SubmissionEventsTopic)
	return eventQueue
}

func initApi(db *database.Queries) *api.Api {
	log.Info("initializing api config")

	ps := &problem_service.ProblemService{DB: db}
	ps.Start(cfg.ProblemCacheSize)

	us := &user_service.UserService{DB: db}
	us.Start()

	prs := &progress_service.ProgressService{
		DB:    db,
		Stats: us,
	}
	// keep Cache a nil interface when redis is absent
	if cache := initProgressCache(); cache != nil {
		prs.Cache = cache
	}
	prs.Start()

	ss := &submission_service.SubmissionService{
		Problems:  ps,
		Progress:  prs,
		Evaluator: &evaluation_service.EvaluationService{},
	}
	if publisher := initEventPublisher(); publisher != nil {
		ss.Events = publisher
	}
	ss.Start()

	return &api.Api{
		SubmissionServiceConfig: ss,
		ProblemServiceConfig:    ps,
		ProgressServiceConfig:   prs,
		UserServiceConfig:       us,
		DB:                      pool,
	}
}

func setup() {
	cfg = config.ConfigInit()
	initLogger()
	pool = initDatabase()
	service.InitializeServices(pool)
	apiConfig = initApi(database.New(pool))
}

func setCors(router *chi.Mux) {
	router.Use(
		cors.Handler(
			cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: true,
				ExposedHeaders:   []string{"Link"},
				MaxAge:           300,
			},
		),
	)
	log.Info("cors options has been set")
}

func shutdown() {
	// flush queued events before the writer goes away
	if eventQueue != nil {
		eventQueue.Stop()
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			log.Errorf("cannot close kafka writer, %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Errorf("cannot close redis client, %v", err)
		}
	}
	pool.Close()
}

func main() {
	setup()
	defer shutdown()

	// initialize a new router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	setCors(router)

	// mount v1 router
	v1router := NewV1Router(apiConfig, cfg.JWTSecret)
	router.Mount("/v1", v1router)
	log.Info("v1 router has been mounted")

	// create a server object to listen to all requests
	srv := http.Server{
		Handler:           router,
		Addr:              cfg.Addr(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// returning lets the deferred shutdown flush queued events
	if err := runServer(ctx, &srv, 10*time.Second); err != nil {
		log.Errorf("Server cannot be started. Error: %v", err)
	}
}

// runServer serves until ctx is done or the listener fails
func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("starting server on %s", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed, %w", err)
	}
	return nil
}
