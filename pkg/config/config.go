package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Storage    StorageConfig
	Repository RepositoryConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Migrate  bool
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

type StorageConfig struct {
	Driver       string // "local" or "s3"
	Bucket       string
	LocalPath    string
	PublicURL    string // base URL the local driver signs against
	Region       string
	Endpoint     string // AWS_ENDPOINT_URL, e.g. http://localhost:9000 for MinIO
	SignedURLTTL time.Duration
}

type RepositoryConfig struct {
	Driver       string // "postgres" or "memory"
	StoreTimeout time.Duration
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	bodyLimitMB, _ := strconv.Atoi(getEnv("SERVER_BODY_LIMIT_MB", "25"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	signedTTL, _ := strconv.Atoi(getEnv("SIGNED_URL_TTL_SECONDS", "3600"))
	storeTimeout, _ := strconv.Atoi(getEnv("STORE_TIMEOUT_SECONDS", "10"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			BodyLimit:    bodyLimitMB * 1024 * 1024,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "legaldesk"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Migrate:  getEnv("DB_MIGRATE", "true") == "true",
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Storage: StorageConfig{
			Driver:       getEnv("STORAGE_DRIVER", "local"),
			Bucket:       getEnv("STORAGE_BUCKET", "documents"),
			LocalPath:    getEnv("STORAGE_LOCAL_PATH", "uploads"),
			PublicURL:    getEnv("STORAGE_PUBLIC_URL", "http://localhost:8080"),
			Region:       getEnv("AWS_REGION", "us-east-1"),
			Endpoint:     getEnv("AWS_ENDPOINT_URL", ""),
			SignedURLTTL: time.Duration(signedTTL) * time.Second,
		},
		Repository: RepositoryConfig{
			Driver:       getEnv("REPOSITORY_DRIVER", "postgres"),
			StoreTimeout: time.Duration(storeTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
