package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	NATS     NATSConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	Telegram TelegramConfig
	Reminder ReminderConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogSQL   bool
}

// NATSConfig for publishing task events to JetStream
type NATSConfig struct {
	Enabled bool
	URL     string        // nats://localhost:4222
	MaxAge  time.Duration // event retention
}

// RedisConfig for caching group directory lookups
type RedisConfig struct {
	Enabled      bool
	URL          string // redis://localhost:6379
	Password     string
	DB           int
	DirectoryTTL time.Duration
}

type JWTConfig struct {
	Secret string
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// TelegramConfig for the coordinators' notification chat
type TelegramConfig struct {
	Enabled  bool
	BotToken string
	ChatID   string
}

type ReminderConfig struct {
	Enabled   bool
	Cron      string
	BatchSize int
}

type CORSConfig struct {
	AllowOrigins []string
}

func LoadConfig() (*Config, error) {
	// a missing .env is fine, the environment wins anyway
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Attendance Tasks"),
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "attendance"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			LogSQL:   getBool("DB_LOG_SQL", false),
		},
		NATS: NATSConfig{
			Enabled: getBool("NATS_ENABLED", false),
			URL:     getEnv("NATS_URL", "nats://localhost:4222"),
			MaxAge:  getDuration("NATS_EVENT_MAX_AGE", 7*24*time.Hour),
		},
		Redis: RedisConfig{
			Enabled:      getBool("REDIS_ENABLED", false),
			URL:          getEnv("REDIS_URL", "redis://localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getInt("REDIS_DB", 0),
			DirectoryTTL: getDuration("REDIS_DIRECTORY_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "both"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    getInt("LOG_MAX_SIZE", 100),
			MaxBackups: getInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     getInt("LOG_MAX_AGE", 30),
			Compress:   getBool("LOG_COMPRESS", true),
		},
		Telegram: TelegramConfig{
			Enabled:  getBool("TELEGRAM_ENABLED", false),
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},
		Reminder: ReminderConfig{
			Enabled:   getBool("REMINDER_ENABLED", true),
			Cron:      getEnv("REMINDER_CRON", "0 8 * * *"),
			BatchSize: getInt("REMINDER_BATCH_SIZE", 200),
		},
		CORS: CORSConfig{
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		},
	}

	// no chat to post to
	if config.Telegram.BotToken == "" || config.Telegram.ChatID == "" {
		config.Telegram.Enabled = false
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// splitList turns "a, b,,c" into [a b c]
func splitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
