package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DispatchModeQueue  = "queue"
	DispatchModeInline = "inline"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Alert dispatch Config
	AlertURL     string        `env:"ALERT_URL"`
	AlertSecret  string        `env:"ALERT_SECRET"`
	AlertTimeout time.Duration `env:"ALERT_TIMEOUT" envDefault:"10s"`
	DispatchMode string        `env:"DISPATCH_MODE" envDefault:"queue"`

	// SOS Config
	CountdownSeconds int           `env:"SOS_COUNTDOWN_SECONDS" envDefault:"5"`
	TickInterval     time.Duration `env:"SOS_TICK_INTERVAL" envDefault:"1s"`
	DefaultLatitude  float64       `env:"DEFAULT_LATITUDE" envDefault:"17.4268"`
	DefaultLongitude float64       `env:"DEFAULT_LONGITUDE" envDefault:"78.4484"`

	// Community Config
	VolunteerRadiusKm float64       `env:"VOLUNTEER_RADIUS_KM" envDefault:"5"`
	ZoneCacheTTL      time.Duration `env:"ZONE_CACHE_TTL" envDefault:"5m"`
	TimelineLimit     int           `env:"TIMELINE_LIMIT" envDefault:"50"`

	// HTTP Config
	RateLimitRPS       float64  `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" envDefault:"20"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		AlertURL:          os.Getenv("ALERT_URL"),
		AlertSecret:       os.Getenv("ALERT_SECRET"),
		AlertTimeout:      getEnvAsDuration("ALERT_TIMEOUT", 10*time.Second),
		DispatchMode:      getEnv("DISPATCH_MODE", DispatchModeQueue),
		CountdownSeconds:  getEnvAsInt("SOS_COUNTDOWN_SECONDS", 5),
		TickInterval:      getEnvAsDuration("SOS_TICK_INTERVAL", time.Second),
		DefaultLatitude:   getEnvAsFloat("DEFAULT_LATITUDE", 17.4268),
		DefaultLongitude:  getEnvAsFloat("DEFAULT_LONGITUDE", 78.4484),
		VolunteerRadiusKm: getEnvAsFloat("VOLUNTEER_RADIUS_KM", 5),
		ZoneCacheTTL:      getEnvAsDuration("ZONE_CACHE_TTL", 5*time.Minute),
		TimelineLimit:     getEnvAsInt("TIMELINE_LIMIT", 50),
		RateLimitRPS:      getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 20),
	}

	// Загрузка API ключей и разрешенных источников CORS
	cfg.APIKeys = getEnvAsList("API_KEYS", nil)
	cfg.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные и взаимосвязанные параметры
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if c.DispatchMode != DispatchModeQueue && c.DispatchMode != DispatchModeInline {
		return fmt.Errorf("DISPATCH_MODE must be %q or %q, got %q", DispatchModeQueue, DispatchModeInline, c.DispatchMode)
	}
	if c.CountdownSeconds < 1 {
		return fmt.Errorf("SOS_COUNTDOWN_SECONDS must be positive, got %d", c.CountdownSeconds)
	}
	if c.DefaultLatitude < -90 || c.DefaultLatitude > 90 || c.DefaultLongitude < -180 || c.DefaultLongitude > 180 {
		return fmt.Errorf("DEFAULT_LATITUDE/DEFAULT_LONGITUDE out of range: %v, %v", c.DefaultLatitude, c.DefaultLongitude)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsList возвращает список значений через запятую или значение по умолчанию
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	items := strings.Split(value, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
