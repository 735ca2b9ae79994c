package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Embedding EmbeddingConfig
	Tasks     TaskConfig
	Storage   StorageConfig
	Ingestion IngestionConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
	Driver     string // "postgres" or "memory"
}

type EmbeddingConfig struct {
	Provider      string // "ollama" or "hash"
	OllamaBaseURL string
	OllamaModel   string
	RedisURL      string
	CacheTTL      time.Duration
}

type TaskConfig struct {
	Transport string // "gochannel" or "nats"
	NatsURL   string
	Stream    string
	Topic     string
	Durable   string
}

type StorageConfig struct {
	UploadDir string
	S3Bucket  string
	AwsRegion string
	AwsKey    string
	AwsSecret string
}

type IngestionConfig struct {
	ChunkSize       int
	ChunkOverlap    int
	URLFetchTimeout time.Duration
	StaleAfter      time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// UseMemoryStore reports whether persistence runs in-process.
func (c *Config) UseMemoryStore() bool {
	return c.Database.Driver == "memory" || c.Database.Connection == ""
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/insighthub.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Driver:     getEnv("STORAGE_DRIVER", "postgres"),
		},
		Embedding: EmbeddingConfig{
			Provider:      getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			CacheTTL:      getEnvAsDuration("EMBEDDING_CACHE_TTL", 24*time.Hour),
		},
		Tasks: TaskConfig{
			Transport: getEnv("TASK_TRANSPORT", "gochannel"),
			NatsURL:   getEnv("NATS_URL", "nats://localhost:4222"),
			Stream:    getEnv("TASK_STREAM", "TASKS"),
			Topic:     getEnv("TASK_TOPIC", "insighthub.tasks"),
			Durable:   getEnv("TASK_DURABLE", "insighthub-worker"),
		},
		Storage: StorageConfig{
			UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
			S3Bucket:  getEnv("S3_BUCKET", ""),
			AwsRegion: getEnv("AWS_REGION", ""),
			AwsKey:    getEnv("AWS_ACCESS_KEY", ""),
			AwsSecret: getEnv("AWS_SECRET_KEY", ""),
		},
		Ingestion: IngestionConfig{
			ChunkSize:       getEnvAsInt("CHUNK_SIZE", 800),
			ChunkOverlap:    getEnvAsInt("CHUNK_OVERLAP", 100),
			URLFetchTimeout: getEnvAsDuration("URL_FETCH_TIMEOUT", 10*time.Second),
			StaleAfter:      getEnvAsDuration("PROCESSING_STALE_AFTER", 30*time.Minute),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
