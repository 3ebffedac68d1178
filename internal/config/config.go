package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	KeyDBURL                 = "DB_URL"
	KeyPort                  = "PORT"
	KeyApiURL                = "API_URL"
	KeyJWTSecret             = "JWT_SECRET"
	KeyRedisURL              = "REDIS_URL"
	KeyKafkaBrokers          = "KAFKA_BROKERS"
	KeySubmissionEventsTopic = "SUBMISSION_EVENTS_TOPIC"
	KeyProblemCacheSize      = "PROBLEM_CACHE_SIZE"
	KeyLogLevel              = "LOG_LEVEL"

	defaultPort                  = "8080"
	defaultSubmissionEventsTopic = "submission_events"
	defaultProblemCacheSize      = 256
)

type Config struct {
	DBURL  string
	Port   string
	ApiURL string

	JWTSecret string

	// optional collaborators, empty disables them
	RedisURL     string
	KafkaBrokers []string

	SubmissionEventsTopic string
	ProblemCacheSize      int
	LogLevel              log.Level
}

func ConfigInit() Config {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, relying on environment variables")
	}

	cfg := Config{
		DBURL:                 os.Getenv(KeyDBURL),
		Port:                  getEnv(KeyPort, defaultPort),
		ApiURL:                os.Getenv(KeyApiURL),
		JWTSecret:             os.Getenv(KeyJWTSecret),
		RedisURL:              os.Getenv(KeyRedisURL),
		SubmissionEventsTopic: getEnv(KeySubmissionEventsTopic, defaultSubmissionEventsTopic),
		ProblemCacheSize:      getEnvInt(KeyProblemCacheSize, defaultProblemCacheSize),
		LogLevel:              getEnvLevel(KeyLogLevel, log.InfoLevel),
	}

	if brokers := os.Getenv(KeyKafkaBrokers); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}

// address the http server listens on
func (c Config) Addr() string {
	return c.ApiURL + ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Warnf("invalid %s %q. using default %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvLevel(key string, fallback log.Level) log.Level {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	level, err := log.ParseLevel(value)
	if err != nil {
		log.Warnf("invalid %s %q. using default %s", key, value, fallback)
		return fallback
	}
	return level
}
