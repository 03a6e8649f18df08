package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath переменная окружения с путем к конфигу
const EnvConfigPath = "CONFIG_PATH"

// DefaultPath путь к конфигу по умолчанию
const DefaultPath = "config.toml"

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Gateway  GatewayConfig  `toml:"gateway"`
	Database DatabaseConfig `toml:"database"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// GatewayConfig бэкенд API; Timeout в секундах
type GatewayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// DatabaseConfig хранилище ключей идемпотентности
// При enabled = false используется хранилище в памяти процесса
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
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
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig параметры формы бронирования и уведомлений
type BookingConfig struct {
	RedirectDelayMs         int      `toml:"redirect_delay_ms"`
	ProfileErrorSignatures  []string `toml:"profile_error_signatures"`
	NotificationsPerSession int      `toml:"notifications_per_session"`
	NotificationTTL         int      `toml:"notification_ttl"`     // секунды
	JanitorInterval         int      `toml:"janitor_interval"`     // секунды
	SubmissionRetention     int      `toml:"submission_retention"` // часы
	FenceTTL                int      `toml:"fence_ttl"`            // секунды
}

func (c BookingConfig) RedirectDelay() time.Duration {
	return time.Duration(c.RedirectDelayMs) * time.Millisecond
}

// PathFromEnv путь из CONFIG_PATH или путь по умолчанию
func PathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultPath
}

// Load читает TOML, подставляет значения по умолчанию и проверяет результат
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	setDefault(&c.Gateway.Timeout, 10)

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 10)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc-tourbooking"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	setDefault(&c.Booking.RedirectDelayMs, 1500)
	// Явный пустой список отключает переход по сигнатуре
	if c.Booking.ProfileErrorSignatures == nil {
		c.Booking.ProfileErrorSignatures = []string{"invalid profile provided"}
	}
	setDefault(&c.Booking.NotificationsPerSession, 20)
	setDefault(&c.Booking.NotificationTTL, 300)
	setDefault(&c.Booking.JanitorInterval, 60)
	setDefault(&c.Booking.SubmissionRetention, 24)
	setDefault(&c.Booking.FenceTTL, 600)
}

func (c *Config) validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d is out of range", c.Server.HTTPPort))
	}

	if c.Gateway.URL == "" {
		errs = append(errs, errors.New("gateway.url is required"))
	} else if u, err := url.Parse(c.Gateway.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("gateway.url %q is not an absolute URL", c.Gateway.URL))
	}

	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logs.level %q is unknown", c.Logs.Level))
	}

	if c.Database.Enabled && (c.Database.Host == "" || c.Database.DBName == "") {
		errs = append(errs, errors.New("database.host and database.dbname are required when database is enabled"))
	}

	if !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path %q must start with /", c.Metrics.Path))
	}

	if c.Gateway.Timeout < 0 {
		errs = append(errs, errors.New("gateway.timeout must not be negative"))
	}

	if c.Booking.RedirectDelayMs < 0 {
		errs = append(errs, errors.New("booking.redirect_delay_ms must not be negative"))
	}
	if c.Booking.NotificationsPerSession < 0 {
		errs = append(errs, errors.New("booking.notifications_per_session must not be negative"))
	}
	if c.Booking.NotificationTTL < 0 {
		errs = append(errs, errors.New("booking.notification_ttl must not be negative"))
	}
	if c.Booking.JanitorInterval <= 0 {
		errs = append(errs, fmt.Errorf("booking.janitor_interval %d must be positive", c.Booking.JanitorInterval))
	}
	if c.Booking.SubmissionRetention <= 0 {
		errs = append(errs, fmt.Errorf("booking.submission_retention %d must be positive", c.Booking.SubmissionRetention))
	}
	// Ключ не должен забываться, пока по нему еще может выполняться запрос
	if c.Booking.FenceTTL <= c.Gateway.Timeout {
		errs = append(errs, fmt.Errorf("booking.fence_ttl %d must exceed gateway.timeout %d", c.Booking.FenceTTL, c.Gateway.Timeout))
	}

	return errors.Join(errs...)
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
