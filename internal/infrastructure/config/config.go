package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	config     *Config
	configOnce sync.Once
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBSSLMode       string
	DBMigrationMode string // "auto"(default), "drop", "none"
	DBMaxIdleConns  int
	DBMaxOpenConns  int

	// Server
	ServerPort    string
	GinMode       string
	PublicBaseURL string // used for referral share links, falls back to the request origin
	FrontendURL   string // CORS origin

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Rate limiting
	RateLimitBackend     string // "memory" (fixed window), "token_bucket" or "redis"
	RateLimitWindow      time.Duration
	DonationRateLimit    int
	LoginRateLimit       int
	GeneralRateLimit     int
	LimiterSweepInterval time.Duration

	// JWT Authentication
	JWTSecretKey string
	JWTExpiry    time.Duration

	// Admin
	DefaultAdminUsername string
	DefaultAdminEmail    string
	DefaultAdminPassword string

	// Logging
	LogLevel string
	LogFile  string

	// Workers
	ReportWorkers      int
	DataRetentionYears int
}

// LoadConfig reads configuration from config.yaml (optional) and environment
// variables. Environment-specific variables (LOCAL_ / SERVER_ prefixed, chosen
// by ENV_TYPE) win over unprefixed ones, which win over defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	_ = v.BindEnv("ENV_TYPE")
	v.SetDefault("ENV_TYPE", "LOCAL")
	envType := strings.ToUpper(v.GetString("ENV_TYPE"))

	var prefix string
	switch envType {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		return nil, fmt.Errorf("unknown ENV_TYPE %q", envType)
	}

	bind(v, prefix, "DB_DRIVER", DriverPostgres)
	bind(v, prefix, "DB_HOST", "localhost")
	bind(v, prefix, "DB_PORT", "5432")
	bind(v, prefix, "DB_USER", "postgres")
	bind(v, prefix, "DB_PASSWORD", "")
	bind(v, prefix, "DB_NAME", "donaciones")
	bind(v, prefix, "DB_SSLMODE", "disable")
	bind(v, prefix, "DB_MIGRATION_MODE", "auto")
	bind(v, prefix, "DB_MAX_IDLE_CONNS", 10)
	bind(v, prefix, "DB_MAX_OPEN_CONNS", 50)

	bind(v, prefix, "SERVER_PORT", "3001")
	bind(v, prefix, "GIN_MODE", "release")
	bind(v, prefix, "PUBLIC_BASE_URL", "")
	bind(v, prefix, "FRONTEND_URL", "http://localhost:3000")

	bind(v, prefix, "REDIS_HOST", "localhost")
	bind(v, prefix, "REDIS_PORT", "6379")
	bind(v, prefix, "REDIS_PASSWORD", "")
	bind(v, prefix, "REDIS_DB", 0)

	bind(v, prefix, "RATE_LIMIT_BACKEND", "memory")
	bind(v, prefix, "RATE_LIMIT_WINDOW", 15*time.Minute)
	bind(v, prefix, "DONATION_RATE_LIMIT", 5)
	bind(v, prefix, "LOGIN_RATE_LIMIT", 5)
	bind(v, prefix, "GENERAL_RATE_LIMIT", 100)
	bind(v, prefix, "LIMITER_SWEEP_INTERVAL", time.Minute)

	bind(v, prefix, "JWT_SECRET_KEY", "")
	bind(v, prefix, "JWT_EXPIRY", 24*time.Hour)

	bind(v, prefix, "DEFAULT_ADMIN_USERNAME", "admin")
	bind(v, prefix, "DEFAULT_ADMIN_EMAIL", "admin@polaallande.org")
	bind(v, prefix, "DEFAULT_ADMIN_PASSWORD", "")

	bind(v, prefix, "LOG_LEVEL", "info")
	bind(v, prefix, "LOG_FILE", "")

	bind(v, prefix, "REPORT_WORKERS", 5)
	bind(v, prefix, "DATA_RETENTION_YEARS", 7)

	cfg := &Config{
		EnvType: envType,

		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBUser:          v.GetString("DB_USER"),
		DBPassword:      v.GetString("DB_PASSWORD"),
		DBName:          v.GetString("DB_NAME"),
		DBSSLMode:       v.GetString("DB_SSLMODE"),
		DBMigrationMode: strings.ToLower(v.GetString("DB_MIGRATION_MODE")),
		DBMaxIdleConns:  v.GetInt("DB_MAX_IDLE_CONNS"),
		DBMaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),

		ServerPort:    v.GetString("SERVER_PORT"),
		GinMode:       v.GetString("GIN_MODE"),
		PublicBaseURL: strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		FrontendURL:   v.GetString("FRONTEND_URL"),

		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		RateLimitBackend:     strings.ToLower(v.GetString("RATE_LIMIT_BACKEND")),
		RateLimitWindow:      v.GetDuration("RATE_LIMIT_WINDOW"),
		DonationRateLimit:    v.GetInt("DONATION_RATE_LIMIT"),
		LoginRateLimit:       v.GetInt("LOGIN_RATE_LIMIT"),
		GeneralRateLimit:     v.GetInt("GENERAL_RATE_LIMIT"),
		LimiterSweepInterval: v.GetDuration("LIMITER_SWEEP_INTERVAL"),

		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),
		JWTExpiry:    v.GetDuration("JWT_EXPIRY"),

		DefaultAdminUsername: v.GetString("DEFAULT_ADMIN_USERNAME"),
		DefaultAdminEmail:    v.GetString("DEFAULT_ADMIN_EMAIL"),
		DefaultAdminPassword: v.GetString("DEFAULT_ADMIN_PASSWORD"),

		LogLevel: v.GetString("LOG_LEVEL"),
		LogFile:  v.GetString("LOG_FILE"),

		ReportWorkers:      v.GetInt("REPORT_WORKERS"),
		DataRetentionYears: v.GetInt("DATA_RETENTION_YEARS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bind registers a key with its default, looking up the prefixed variable first
func bind(v *viper.Viper, prefix, key string, def interface{}) {
	v.SetDefault(key, def)
	_ = v.BindEnv(key, prefix+key, key)
}

// Validate checks values that cannot be defaulted safely
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.DBMigrationMode {
	case "auto", "drop", "none":
	default:
		return fmt.Errorf("unsupported DB_MIGRATION_MODE %q", c.DBMigrationMode)
	}
	switch c.RateLimitBackend {
	case "memory", "token_bucket", "redis":
	default:
		return fmt.Errorf("unsupported RATE_LIMIT_BACKEND %q", c.RateLimitBackend)
	}
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.DefaultAdminPassword == "" {
		return errors.New("DEFAULT_ADMIN_PASSWORD is required")
	}
	if c.RateLimitWindow <= 0 || c.JWTExpiry <= 0 {
		return errors.New("RATE_LIMIT_WINDOW and JWT_EXPIRY must be positive")
	}
	if c.ReportWorkers < 1 {
		c.ReportWorkers = 1
	}
	if c.LimiterSweepInterval <= 0 {
		c.LimiterSweepInterval = time.Minute
	}
	return nil
}

// GetConfig returns the application configuration as a singleton.
// It panics when the configuration is invalid.
func GetConfig() *Config {
	configOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			panic(fmt.Sprintf("load configuration: %v", err))
		}
		config = cfg
	})
	return config
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	if c.DBDriver == DriverMySQL {
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=UTC"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
