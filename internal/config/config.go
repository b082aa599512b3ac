package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	RapidAPI RapidAPIConfig
	Storage  StorageConfig
	Matcher  MatcherConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey     string
	EmbedModel string
	TextModel  string
}

type RapidAPIConfig struct {
	Key  string
	Host string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

// MatcherConfig holds the scoring and ingestion knobs.
type MatcherConfig struct {
	// VectorBackend selects where embeddings live: "inline" keeps the
	// vector in the entity row, "qdrant" stores it out-of-line.
	VectorBackend string
	// RankerPath points at the trained ranker artifact. Empty or
	// missing is a valid state; the heuristic scorer is used instead.
	RankerPath string
	ResultCap  int
	MaxScore   int
	// RegionExtraTokens extends the built-in Philippines location
	// token list (comma-separated).
	RegionExtraTokens  []string
	ExplanationTimeout time.Duration
}

type WorkerConfig struct {
	Concurrency        int
	RankingConcurrency int
	RefreshQuery       string
	RefreshLimit       int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "internship_matcher"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "internship_matcher_vectors"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			EmbedModel: getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			TextModel:  getEnv("TEXT_MODEL", "gemini-2.5-flash"),
		},
		RapidAPI: RapidAPIConfig{
			Key:  getEnv("RAPID_API_KEY", ""),
			Host: getEnv("RAPID_API_HOST", "internships-api.p.rapidapi.com"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Matcher: MatcherConfig{
			VectorBackend:      getEnv("VECTOR_BACKEND", "inline"),
			RankerPath:         getEnv("RANKER_PATH", ""),
			ResultCap:          getEnvAsInt("RESULT_CAP", 20),
			MaxScore:           getEnvAsInt("MAX_SCORE", 100),
			RegionExtraTokens:  getEnvAsList("REGION_EXTRA_TOKENS"),
			ExplanationTimeout: getEnvAsDuration("EXPLANATION_TIMEOUT", "8s"),
		},
		Worker: WorkerConfig{
			Concurrency:        getEnvAsInt("WORKER_CONCURRENCY", 3),
			RankingConcurrency: getEnvAsInt("RANKING_CONCURRENCY", 4),
			RefreshQuery:       getEnv("REFRESH_QUERY", "internship"),
			RefreshLimit:       getEnvAsInt("REFRESH_LIMIT", 50),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}
