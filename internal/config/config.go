package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig      `toml:"server"`
	Storage       StorageConfig     `toml:"storage"`
	Database      DatabaseConfig    `toml:"database"`
	Redis         RedisConfig       `toml:"redis"`
	Logs          LogsConfig        `toml:"logs"`
	Metrics       MetricsConfig     `toml:"metrics"`
	Booking       BookingConfig     `toml:"booking"`
	Reminders     RemindersConfig   `toml:"reminders"`
	Outbox        OutboxConfig      `toml:"outbox"`
	Directory     IntegrationConfig `toml:"directory_service"`
	Catalog       IntegrationConfig `toml:"catalog_service"`
	Notifier      IntegrationConfig `toml:"notification_service"`
	CommissionAPI IntegrationConfig `toml:"commission_service"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | memory
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения для golang-migrate
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	CacheTTL int    `toml:"cache_ttl"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	Timezone          string `toml:"timezone"` // IANA, например Europe/Moscow
	RetryAttempts     int    `toml:"retry_attempts"`
	RetryBaseDelayMs  int    `toml:"retry_base_delay_ms"`
	RetryMaxDelayMs   int    `toml:"retry_max_delay_ms"`
	NotifyTimeoutSecs int    `toml:"notify_timeout"`
}

// Location часовой пояс салонов
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type RemindersConfig struct {
	Enabled       bool    `toml:"enabled"`
	Schedule      string  `toml:"schedule"`       // cron выражение
	LeadMinutes   int     `toml:"lead_minutes"`   // за сколько до начала напоминать
	WindowMinutes int     `toml:"window_minutes"` // ширина окна сканирования
	RateLimit     float64 `toml:"rate_limit"`     // уведомлений в секунду
	Burst         int     `toml:"burst"`
}

type OutboxConfig struct {
	Enabled   bool `toml:"enabled"`
	Interval  int  `toml:"interval"` // секунды
	BatchSize int  `toml:"batch_size"`
}

type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load загружает конфигурацию из TOML файла
// Переменные из .env (если файл есть) и окружения переопределяют секреты и адреса
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{Addr: "localhost:6379", CacheTTL: 300},
		Logs:  LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-appointmentservice",
		},
		Booking: BookingConfig{
			Timezone:          "Europe/Moscow",
			RetryAttempts:     3,
			RetryBaseDelayMs:  50,
			RetryMaxDelayMs:   200,
			NotifyTimeoutSecs: 5,
		},
		Reminders: RemindersConfig{
			Enabled:       true,
			Schedule:      "*/5 * * * *",
			LeadMinutes:   24 * 60,
			WindowMinutes: 5,
			RateLimit:     20,
			Burst:         30,
		},
		Outbox:        OutboxConfig{Enabled: true, Interval: 30, BatchSize: 50},
		Directory:     IntegrationConfig{Timeout: 5},
		Catalog:       IntegrationConfig{Timeout: 5},
		Notifier:      IntegrationConfig{Timeout: 5},
		CommissionAPI: IntegrationConfig{Timeout: 5},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.RetryAttempts < 1 {
		return fmt.Errorf("%w: retry_attempts must be at least 1", ErrInvalidConfig)
	}

	if c.Reminders.Enabled && (c.Reminders.LeadMinutes <= 0 || c.Reminders.WindowMinutes <= 0) {
		return fmt.Errorf("%w: reminder lead and window must be positive", ErrInvalidConfig)
	}

	if c.Outbox.Enabled && c.Outbox.BatchSize <= 0 {
		return fmt.Errorf("%w: outbox batch_size must be positive", ErrInvalidConfig)
	}

	for name, integration := range map[string]IntegrationConfig{
		"directory_service":    c.Directory,
		"catalog_service":      c.Catalog,
		"notification_service": c.Notifier,
		"commission_service":   c.CommissionAPI,
	} {
		if integration.URL == "" {
			return fmt.Errorf("%w: %s.url is required", ErrInvalidConfig, name)
		}
	}

	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Logs.Level, "LOG_LEVEL")
	setString(&cfg.Booking.Timezone, "SALON_TIMEZONE")
	setString(&cfg.Directory.URL, "DIRECTORY_SERVICE_URL")
	setString(&cfg.Catalog.URL, "CATALOG_SERVICE_URL")
	setString(&cfg.Notifier.URL, "NOTIFICATION_SERVICE_URL")
	setString(&cfg.CommissionAPI.URL, "COMMISSION_SERVICE_URL")

	if err := setInt(&cfg.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	return setBool(&cfg.Redis.Enabled, "REDIS_ENABLED")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	*dst = b
	return nil
}
