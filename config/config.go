package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// JWT settings have no defaults: a process without them must not start.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Redis cache backing store. Empty disables caching entirely.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Migrations
	MigrationsDir string

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// Email sending toggle; when false the dispatcher logs instead of sending
	MailSendEnabled bool

	// Email dispatcher polling
	EmailPollInterval time.Duration
	EmailPollBatch    int

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables. It returns an error
// when a required value is missing so callers can fail fast at startup.
func Load() (*Config, error) {
	cfg := &Config{
		AppName: getenv("APP_NAME", "userhub"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "userhub"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   os.Getenv("JWT_ISSUER"),
		JWTAudience: os.Getenv("JWT_AUDIENCE"),
		AccessTTL:   time.Duration(getint("JWT_ACCESS_TTL_MINUTES", 15)) * time.Minute,
		RefreshTTL:  getdur("JWT_REFRESH_TTL", 168*time.Hour),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		MailSendEnabled: getbool("MAIL_SEND_ENABLED", false),

		EmailPollInterval: getdur("EMAIL_POLL_INTERVAL", 5*time.Second),
		EmailPollBatch:    getint("EMAIL_POLL_BATCH", 16),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}

	var missing []string
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if strings.TrimSpace(cfg.JWTIssuer) == "" {
		missing = append(missing, "JWT_ISSUER")
	}
	if strings.TrimSpace(cfg.JWTAudience) == "" {
		missing = append(missing, "JWT_AUDIENCE")
	}
	if len(missing) > 0 {
		return nil, errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("JWT_ACCESS_TTL_MINUTES must be positive")
	}
	if cfg.RefreshTTL <= 0 {
		return nil, errors.New("JWT_REFRESH_TTL must be positive")
	}
	return cfg, nil
}

// CacheEnabled reports whether a cache backing store was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
