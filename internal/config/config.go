package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Источники начальных данных
const (
	SeedEmbedded = "embedded"
	SeedDir      = "dir"
	SeedPostgres = "postgres"
)

type Config struct {
	Environment string
	Log         LogConfig
	Server      ServerConfig
	Store       StoreConfig
	Seed        SeedConfig
	Reporting   ReportingConfig
	Telegram    TelegramConfig
}

// LogConfig: пустой Level берёт уровень по окружению, пустой Output пишет в stdout
type LogConfig struct {
	Level  string
	Output string
}

type ServerConfig struct {
	Port string
}

// StoreConfig: LatencyScale умножает имитируемые задержки, 0 их отключает
type StoreConfig struct {
	LatencyScale float64
}

type SeedConfig struct {
	Source string
	Dir    string
	DBDSN  string
}

type ReportingConfig struct {
	CronSchedule string
	Timezone     string
	ExportDir    string
}

// TelegramConfig: дайджест уходит в Telegram, только если заданы оба поля
type TelegramConfig struct {
	Token  string
	ChatID string
}

func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != ""
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	scale, err := strconv.ParseFloat(getenvWithDefault("STORE_LATENCY_SCALE", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("STORE_LATENCY_SCALE: %w", err)
	}

	cfg := &Config{
		Environment: getenvWithDefault("ENV", "development"),
		Log: LogConfig{
			Level:  os.Getenv("LOG_LEVEL"),
			Output: os.Getenv("LOG_OUTPUT"),
		},
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Store: StoreConfig{
			LatencyScale: scale,
		},
		Seed: SeedConfig{
			Source: getenvWithDefault("SEED_SOURCE", SeedEmbedded),
			Dir:    os.Getenv("SEED_DIR"),
			DBDSN:  os.Getenv("DB_DSN"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 8 * * *"),
			Timezone:     getenvWithDefault("REPORT_TIMEZONE", "UTC"),
			ExportDir:    os.Getenv("REPORT_EXPORT_DIR"),
		},
		Telegram: TelegramConfig{
			Token:  os.Getenv("TELEGRAM_TOKEN"),
			ChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Config loaded (env=%s, seed=%s)\n", cfg.Environment, cfg.Seed.Source)

	return cfg, nil
}

// Validate проверяет обязательные и взаимосвязанные поля
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Store.LatencyScale < 0 {
		return errors.New("STORE_LATENCY_SCALE must not be negative")
	}

	switch c.Seed.Source {
	case SeedEmbedded:
	case SeedDir:
		if c.Seed.Dir == "" {
			return errors.New("SEED_DIR is required when SEED_SOURCE=dir")
		}
	case SeedPostgres:
		if c.Seed.DBDSN == "" {
			return errors.New("DB_DSN is required when SEED_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown SEED_SOURCE %q", c.Seed.Source)
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("REPORT_TIMEZONE: %w", err)
	}

	if (c.Telegram.Token == "") != (c.Telegram.ChatID == "") {
		return errors.New("TELEGRAM_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	return nil
}

// GetDBDSN возвращает строку подключения к Postgres с начальными данными
func (c *Config) GetDBDSN() string {
	return c.Seed.DBDSN
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
