package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type Publish struct {
	Enabled    bool
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	ObjectName string
	UseSSL     bool
	Region     string
}

type Config struct {
	ServerPort      int
	Backend         string // "static" or "live"
	OwnerName       string
	OwnerEmail      string
	OwnerPassword   string
	AdminToken      string
	SnapshotURL     string
	RequestTimeout  time.Duration
	DB              DB
	Publish         Publish
	JWTSecretKey    string
	SessionDuration time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "updatesfeed"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadPublish() Publish {
	return Publish{
		Enabled:    getEnvBool("PUBLISH_ENABLED", false),
		Endpoint:   getEnv("PUBLISH_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("PUBLISH_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("PUBLISH_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("PUBLISH_BUCKET_NAME", "site"),
		ObjectName: getEnv("PUBLISH_OBJECT_NAME", "posts.json"),
		UseSSL:     getEnvBool("PUBLISH_USE_SSL", false),
		Region:     getEnv("PUBLISH_REGION", "us-east-1"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		Backend:         getEnv("BACKEND", "static"),
		OwnerName:       getEnv("OWNER_NAME", "Site Owner"),
		OwnerEmail:      getEnv("OWNER_EMAIL", ""),
		OwnerPassword:   getEnv("OWNER_PASSWORD", ""),
		AdminToken:      getEnv("ADMIN_TOKEN", ""),
		SnapshotURL:     getEnv("SNAPSHOT_URL", "http://localhost:8081/posts.json"),
		RequestTimeout:  parseDuration(getEnv("REQUEST_TIMEOUT", "10s"), 10*time.Second),
		DB:              LoadDB(),
		Publish:         LoadPublish(),
		JWTSecretKey:    getEnv("JWT_SECRET_KEY", ""),
		SessionDuration: parseDuration(getEnv("SESSION_DURATION", "2h"), 2*time.Hour),
	}
}
