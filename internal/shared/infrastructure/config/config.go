package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/saransh1220/circle-notify/internal/shared/infrastructure/database"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database database.PostgresConfig
	Redis    database.RedisConfig
	JWT      JWTConfig
	Push     PushConfig
	SMS      SMSConfig
	Triggers TriggersConfig
	Archive  ArchiveConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins string
	AutoMigrate    bool
	MigrationsPath string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level    string
	Encoding string
}

// JWTConfig holds the secret used to verify callable bearer tokens
type JWTConfig struct {
	Secret string
}

// PushConfig holds Expo push gateway configuration
type PushConfig struct {
	Endpoint    string
	AccessToken string
	ChannelID   string
	Timeout     time.Duration
}

// SMSConfig holds SMS gateway configuration
type SMSConfig struct {
	Endpoint string
	User     string
	Password string
	SenderID string
	Language string
	Timeout  time.Duration
}

// TriggersConfig holds document-change transport configuration
type TriggersConfig struct {
	Audience       string
	StreamEnabled  bool
	Stream         string
	Group          string
	Consumer       string
	BlockTimeout   time.Duration
	ReclaimIdle    time.Duration
	ReclaimSpec    string
	ReclaimEnabled bool
}

// ArchiveConfig holds fan-out report archive configuration
type ArchiveConfig struct {
	Enabled          bool
	UseS3            bool
	S3Region         string
	S3Endpoint       string
	S3PublicEndpoint string
	S3AccessKey      string
	S3SecretKey      string
	S3BucketName     string
	S3UseSSL         bool
	LocalPath        string
}

// Load reads configuration from environment variables, after loading an
// optional .env file from the working directory.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
			AutoMigrate:    getEnv("AUTO_MIGRATE", "false") == "true",
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Database: database.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "circle"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: database.RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "default-dev-secret"),
		},
		Push: PushConfig{
			Endpoint:    getEnv("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send"),
			AccessToken: getEnv("EXPO_ACCESS_TOKEN", ""),
			ChannelID:   getEnv("EXPO_CHANNEL_ID", "default"),
			Timeout:     parseDuration(getEnv("EXPO_TIMEOUT", "10s"), 10*time.Second),
		},
		SMS: SMSConfig{
			Endpoint: getEnv("SMS_URL", ""),
			User:     getEnv("SMS_USER", ""),
			Password: getEnv("SMS_PASSWORD", ""),
			SenderID: getEnv("SMS_SENDER_ID", ""),
			Language: getEnv("SMS_LANGUAGE", "E"),
			Timeout:  parseDuration(getEnv("SMS_TIMEOUT", "10s"), 10*time.Second),
		},
		Triggers: TriggersConfig{
			Audience:       getEnv("TRIGGER_AUDIENCE", ""),
			StreamEnabled:  getEnv("TRIGGER_STREAM_ENABLED", "true") == "true",
			Stream:         getEnv("TRIGGER_STREAM", "doc-events"),
			Group:          getEnv("TRIGGER_GROUP", "notification-pipeline"),
			Consumer:       getEnv("TRIGGER_CONSUMER", hostname()),
			BlockTimeout:   parseDuration(getEnv("TRIGGER_BLOCK_TIMEOUT", "5s"), 5*time.Second),
			ReclaimIdle:    parseDuration(getEnv("TRIGGER_RECLAIM_IDLE", "2m"), 2*time.Minute),
			ReclaimSpec:    getEnv("TRIGGER_RECLAIM_SCHEDULE", "@every 1m"),
			ReclaimEnabled: getEnv("TRIGGER_RECLAIM_ENABLED", "true") == "true",
		},
		Archive: ArchiveConfig{
			Enabled:          getEnv("ARCHIVE_ENABLED", "false") == "true",
			UseS3:            getEnv("USE_S3", "true") == "true",
			S3Region:         getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:       getEnv("S3_ENDPOINT", ""),
			S3PublicEndpoint: getEnv("S3_PUBLIC_ENDPOINT", getEnv("S3_ENDPOINT", "")),
			S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
			S3BucketName:     getEnv("S3_BUCKET", ""),
			S3UseSSL:         getEnv("S3_USE_SSL", "true") == "true",
			LocalPath:        getEnv("LOCAL_ARCHIVE_PATH", "./archive"),
		},
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

func parseInt(value string, defaultValue int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return defaultValue
}

func hostname() string {
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return "circle-notify"
}
