package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Quota    QuotaConfig
	Scoring  ScoringConfig
	Analysis AnalysisConfig
	Ingest   IngestConfig
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
	APIKey string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type QuotaConfig struct {
	MaxJobDescriptions int
	MaxResumes         int
}

// ScoringConfig carries the heuristic weighting and the rating thresholds.
// Kept as configuration rather than constants so they can be tuned per
// deployment.
type ScoringConfig struct {
	RequiredWeight   float64
	NiceToHaveWeight float64
	StrongThreshold  float64
	GoodThreshold    float64
}

type AnalysisConfig struct {
	OracleTimeout time.Duration
	Concurrency   int
}

type IngestConfig struct {
	Concurrency  int
	JobRetention time.Duration
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
			DBName:   getEnv("DB_NAME", "resume_matcher"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resume_matcher_docs"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Quota: QuotaConfig{
			MaxJobDescriptions: getEnvAsInt("MAX_JOB_DESCRIPTIONS", 3),
			MaxResumes:         getEnvAsInt("MAX_RESUMES", 20),
		},
		Scoring: ScoringConfig{
			RequiredWeight:   getEnvAsFloat("REQUIRED_WEIGHT", 90),
			NiceToHaveWeight: getEnvAsFloat("NICE_TO_HAVE_WEIGHT", 10),
			StrongThreshold:  getEnvAsFloat("STRONG_THRESHOLD", 70),
			GoodThreshold:    getEnvAsFloat("GOOD_THRESHOLD", 35),
		},
		Analysis: AnalysisConfig{
			OracleTimeout: getEnvAsDuration("ORACLE_TIMEOUT", "2m"),
			Concurrency:   getEnvAsInt("ANALYSIS_CONCURRENCY", 5),
		},
		Ingest: IngestConfig{
			Concurrency:  getEnvAsInt("INGEST_CONCURRENCY", 3),
			JobRetention: getEnvAsDuration("BULK_JOB_RETENTION", "1h"),
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
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
