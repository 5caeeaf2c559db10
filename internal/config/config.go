package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Redis           RedisConfig           `toml:"redis"`
	CalendarService CalendarServiceConfig `toml:"calendar_service"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Availability    AvailabilityConfig    `toml:"availability"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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

// RedisConfig параметры кеша расписаний
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// CalendarServiceConfig параметры клиента внешних календарей
type CalendarServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AvailabilityConfig значения по умолчанию для расчёта слотов
type AvailabilityConfig struct {
	DefaultEventLength   int `toml:"default_event_length"`
	DefaultMinimumNotice int `toml:"default_minimum_notice"`
	MaxWindowDays        int `toml:"max_window_days"`
}

// Load читает конфигурацию из TOML файла
// Переменные окружения (и .env файл, если есть) переопределяют значения из файла
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  300,
		},
		CalendarService: CalendarServiceConfig{
			Timeout: 5,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "availability-service",
		},
		Availability: AvailabilityConfig{
			DefaultEventLength:   domain.DefaultEventLengthMinutes,
			DefaultMinimumNotice: domain.DefaultMinBookingNoticeMinutes,
			MaxWindowDays:        domain.DefaultMaxWindowDays,
		},
	}
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.CalendarService.URL, "CALENDAR_SERVICE_URL")
	setString(&c.Logs.Level, "LOG_LEVEL")

	ints := map[string]*int{
		"DB_PORT":   &c.Database.Port,
		"HTTP_PORT": &c.Server.HTTPPort,
		"REDIS_DB":  &c.Redis.DB,
	}
	for env, dst := range ints {
		if err := setInt(dst, env); err != nil {
			return err
		}
	}

	if v, ok := os.LookupEnv("REDIS_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: REDIS_ENABLED=%q", ErrInvalidConfig, v)
		}
		c.Redis.Enabled = enabled
	}

	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.CalendarService.URL == "" {
		return fmt.Errorf("%w: calendar_service.url is required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return fmt.Errorf("%w: redis.ttl must be positive", ErrInvalidConfig)
	}
	if c.Availability.MaxWindowDays <= 0 {
		return fmt.Errorf("%w: availability.max_window_days must be positive", ErrInvalidConfig)
	}
	if c.Availability.DefaultEventLength < domain.MinEventLengthMinutes ||
		c.Availability.DefaultEventLength > domain.MaxEventLengthMinutes {
		return fmt.Errorf("%w: availability.default_event_length=%d", ErrInvalidConfig, c.Availability.DefaultEventLength)
	}
	if c.Availability.DefaultMinimumNotice < 0 {
		return fmt.Errorf("%w: availability.default_minimum_notice must not be negative", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) error {
	v, ok := os.LookupEnv(env)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, env, v)
	}
	*dst = n
	return nil
}
