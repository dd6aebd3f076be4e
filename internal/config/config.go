package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Auth        AuthConfig        `mapstructure:"auth"`
	CORS        CORSConfig        `mapstructure:"cors"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Database    DatabaseConfig    `mapstructure:"database"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	History     HistoryConfig     `mapstructure:"history"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthConfig holds the shared secret expected in the x-api-key header.
// An empty key leaves the API open.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type NATSConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URL        string `mapstructure:"url"`
	StreamName string `mapstructure:"stream_name"`
	Subject    string `mapstructure:"subject"`
}

// PersistenceConfig controls the fire-and-forget message store.
type PersistenceConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	QueueSize int  `mapstructure:"queue_size"`
}

// HistoryConfig bounds the in-memory conversation log.
type HistoryConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// Load reads configuration from file and environment variables.
// A missing config file is not an error; defaults and env vars apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/scamtrap")
	}

	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("SCAMTRAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("app.name", "SCAMTRAP_APP_NAME")
	v.BindEnv("app.environment", "SCAMTRAP_APP_ENVIRONMENT")
	v.BindEnv("app.version", "SCAMTRAP_APP_VERSION")
	v.BindEnv("server.host", "SCAMTRAP_SERVER_HOST")
	v.BindEnv("server.http_port", "SCAMTRAP_SERVER_HTTP_PORT")
	v.BindEnv("server.read_timeout", "SCAMTRAP_SERVER_READ_TIMEOUT")
	v.BindEnv("server.write_timeout", "SCAMTRAP_SERVER_WRITE_TIMEOUT")
	v.BindEnv("server.idle_timeout", "SCAMTRAP_SERVER_IDLE_TIMEOUT")
	v.BindEnv("server.shutdown_timeout", "SCAMTRAP_SERVER_SHUTDOWN_TIMEOUT")
	v.BindEnv("auth.api_key", "SCAMTRAP_AUTH_API_KEY")
	v.BindEnv("ratelimit.enabled", "SCAMTRAP_RATELIMIT_ENABLED")
	v.BindEnv("ratelimit.requests_per_minute", "SCAMTRAP_RATELIMIT_REQUESTS_PER_MINUTE")
	v.BindEnv("logger.level", "SCAMTRAP_LOGGER_LEVEL")
	v.BindEnv("logger.format", "SCAMTRAP_LOGGER_FORMAT")
	v.BindEnv("logger.time_format", "SCAMTRAP_LOGGER_TIME_FORMAT")
	v.BindEnv("redis.enabled", "SCAMTRAP_REDIS_ENABLED")
	v.BindEnv("redis.host", "SCAMTRAP_REDIS_HOST")
	v.BindEnv("redis.port", "SCAMTRAP_REDIS_PORT")
	v.BindEnv("redis.password", "SCAMTRAP_REDIS_PASSWORD")
	v.BindEnv("redis.db", "SCAMTRAP_REDIS_DB")
	v.BindEnv("redis.key_prefix", "SCAMTRAP_REDIS_KEY_PREFIX")
	v.BindEnv("database.enabled", "SCAMTRAP_DATABASE_ENABLED")
	v.BindEnv("database.host", "SCAMTRAP_DATABASE_HOST")
	v.BindEnv("database.port", "SCAMTRAP_DATABASE_PORT")
	v.BindEnv("database.user", "SCAMTRAP_DATABASE_USER")
	v.BindEnv("database.password", "SCAMTRAP_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "SCAMTRAP_DATABASE_DBNAME")
	v.BindEnv("database.sslmode", "SCAMTRAP_DATABASE_SSLMODE")
	v.BindEnv("database.max_open_conns", "SCAMTRAP_DATABASE_MAX_OPEN_CONNS")
	v.BindEnv("database.max_idle_conns", "SCAMTRAP_DATABASE_MAX_IDLE_CONNS")
	v.BindEnv("database.conn_max_lifetime", "SCAMTRAP_DATABASE_CONN_MAX_LIFETIME")
	v.BindEnv("nats.enabled", "SCAMTRAP_NATS_ENABLED")
	v.BindEnv("nats.url", "SCAMTRAP_NATS_URL")
	v.BindEnv("nats.stream_name", "SCAMTRAP_NATS_STREAM_NAME")
	v.BindEnv("nats.subject", "SCAMTRAP_NATS_SUBJECT")
	v.BindEnv("persistence.enabled", "SCAMTRAP_PERSISTENCE_ENABLED")
	v.BindEnv("persistence.queue_size", "SCAMTRAP_PERSISTENCE_QUEUE_SIZE")
	v.BindEnv("history.capacity", "SCAMTRAP_HISTORY_CAPACITY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default search paths
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "scamtrap")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 3000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "x-api-key"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 120)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "scamtrap:")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "scamtrap")
	v.SetDefault("database.dbname", "scamtrap")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.stream_name", "SCAMTRAP_DETECTIONS")
	v.SetDefault("nats.subject", "detections.classified")

	v.SetDefault("persistence.enabled", true)
	v.SetDefault("persistence.queue_size", 256)

	v.SetDefault("history.capacity", 1000)
}
