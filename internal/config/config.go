package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Tokens   TokensConfig
	Mail     MailConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	// Offline rejects every request, public routes included, with a
	// service-offline error before any other classification.
	Offline bool
	// Debug controls whether rejected-request detail is logged.
	Debug bool
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines credential hashing parameters.
type AuthConfig struct {
	BcryptCost int
}

// TokenConfig is one secret+expiry pair.
type TokenConfig struct {
	Secret     string
	TTLMinutes int
}

// TTL returns the configured expiry as a duration.
func (t TokenConfig) TTL() time.Duration {
	return time.Duration(t.TTLMinutes) * time.Minute
}

// TokensConfig carries the three independent signing configurations. The
// secrets are never interchangeable between purposes.
type TokensConfig struct {
	Session TokenConfig
	Confirm TokenConfig
	Reset   TokenConfig
}

// MailConfig holds outbound email settings.
type MailConfig struct {
	Enabled    bool
	Sender     string
	SMTPHost   string
	SMTPPort   int
	Password   string
	ConfirmURL string
	ResetURL   string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "kanban-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			Offline:               getEnvAsBool("APP_OFFLINE", false),
			Debug:                 getEnvAsBool("APP_DEBUG", false),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			BcryptCost: getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Tokens: TokensConfig{
			Session: TokenConfig{
				Secret:     getEnv("TOKEN_SESSION_SECRET", "dev-session-secret"),
				TTLMinutes: getEnvAsInt("TOKEN_SESSION_TTL_MINUTES", 60),
			},
			Confirm: TokenConfig{
				Secret:     getEnv("TOKEN_CONFIRM_SECRET", "dev-confirm-secret"),
				TTLMinutes: getEnvAsInt("TOKEN_CONFIRM_TTL_MINUTES", 1440),
			},
			Reset: TokenConfig{
				Secret:     getEnv("TOKEN_RESET_SECRET", "dev-reset-secret"),
				TTLMinutes: getEnvAsInt("TOKEN_RESET_TTL_MINUTES", 30),
			},
		},
		Mail: MailConfig{
			Enabled:    getEnvAsBool("MAIL_ENABLED", false),
			Sender:     getEnv("MAIL_SENDER", "noreply@example.com"),
			SMTPHost:   getEnv("MAIL_SMTP_HOST", ""),
			SMTPPort:   getEnvAsInt("MAIL_SMTP_PORT", 465),
			Password:   os.Getenv("MAIL_SMTP_PASSWORD"),
			ConfirmURL: getEnv("MAIL_CONFIRM_URL", "http://localhost:8080/confirm"),
			ResetURL:   getEnv("MAIL_RESET_URL", "http://localhost:8080/reset"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
