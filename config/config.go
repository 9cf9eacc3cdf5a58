package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Config is read from the environment. Outside production a .env file in
// the working directory is loaded first; real environment variables win.
type Config struct {
	Env            string
	HTTPAddr       string
	LogMode        string
	Store          string
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	RedisHost      string
	RedisPort      string
	KafkaBroker    string
	LifecycleTopic string
	StatusGroupID  string
	JWTSecret      string
	PublicBaseURL  string
	UploadDir      string
	CacheTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := Config{
		Env:            getenv("APP_ENV", "development"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		LogMode:        getenv("LOG_MODE", "dev"),
		Store:          getenv("STORE", "postgres"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBName:         getenv("DB_NAME", "catalog"),
		DBUser:         getenv("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getenv("REDIS_PORT", "6379"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		LifecycleTopic: getenv("LIFECYCLE_TOPIC", "restaurant-lifecycle"),
		StatusGroupID:  getenv("STATUS_GROUP_ID", "status-svc"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		PublicBaseURL:  getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
		UploadDir:      getenv("UPLOAD_DIR", "./uploads"),
	}

	var err error
	if cfg.CacheTTL, err = time.ParseDuration(getenv("CACHE_TTL", "5m")); err != nil {
		return Config{}, fmt.Errorf("CACHE_TTL: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getenv("RATE_LIMIT_BURST", "40")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}

	if cfg.Store != "postgres" && cfg.Store != "memory" {
		return Config{}, fmt.Errorf("STORE must be postgres or memory, got %q", cfg.Store)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func (c Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func (c Config) RedisEnabled() bool { return c.RedisHost != "" }
func (c Config) KafkaEnabled() bool { return c.KafkaBroker != "" }

func MustInitPostgres(cfg Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

// NewKafkaWriter hashes on the message key so every event for one
// restaurant lands on the same partition.
func NewKafkaWriter(cfg Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}
