package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port            string
	Mode            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type UploadConfig struct {
	FieldName         string
	MaxFileSize       int64
	MultipartOverhead int64
	MaxPixels         int64
	ProcessTimeout    time.Duration
}

// BodyLimit is the largest request body accepted on upload routes.
func (u UploadConfig) BodyLimit() int64 {
	return u.MaxFileSize + u.MultipartOverhead
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether crop statistics should be kept in Redis.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type RabbitMQConfig struct {
	URL   string
	Queue string
}

func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type CORSConfig struct {
	AllowedOrigins []string
}

const (
	DefaultPort        = "5000"
	DefaultMaxFileSize = 5 * 1024 * 1024 // 5MB
	DefaultFieldName   = "image"
	DefaultMaxPixels   = 16383 * 16383
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", DefaultPort),
			Mode:            getMode("GIN_MODE", "release"),
			ReadTimeout:     getDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDuration("WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Upload: UploadConfig{
			FieldName:         DefaultFieldName,
			MaxFileSize:       getEnvAsInt64("MAX_FILE_SIZE", DefaultMaxFileSize),
			MultipartOverhead: getEnvAsInt64("MULTIPART_OVERHEAD", 64*1024),
			MaxPixels:         getEnvAsInt64("MAX_PIXELS", DefaultMaxPixels),
			ProcessTimeout:    getDuration("PROCESS_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   getEnv("RABBITMQ_URL", ""),
			Queue: getEnv("RABBITMQ_QUEUE", "crop_events"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

// getMode accepts only the modes gin.SetMode understands.
func getMode(key, defaultVal string) string {
	switch value := getEnv(key, defaultVal); value {
	case "debug", "release", "test":
		return value
	default:
		return defaultVal
	}
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultVal
	}
	return items
}
