package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Email    EmailConfig
	Auth     AuthConfig
	Trip     TripConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Secure      bool   // Use HTTPS-only cookies
	Environment string // "development", "production", "test"
	Debug       bool
	BaseURL     string // Public base URL for invite links; derived from the request when empty
}

type DatabaseConfig struct {
	URL            string // postgres:// URL; overrides the connection fields below when set
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type RedisConfig struct {
	URL      string // redis:// or rediss:// URL; overrides the fields below when set
	Host     string
	Port     int
	Password string
	DB       int
}

type EmailConfig struct {
	Provider     string // "resend", "console"
	FromAddress  string
	FromName     string
	ResendAPIKey string
}

type AuthConfig struct {
	TripPassword     string
	TripPasswordHash string // bcrypt hash; takes precedence over TripPassword
	InviteSecret     string
	InviteTTL        time.Duration
	SessionTTL       time.Duration
	JoinRateLimit    int64
}

type TripConfig struct {
	Key       string // KV key holding the trip snapshot
	Name      string
	StartDate string
	EndDate   string
	Locale    string
	SeedFile  string
}

// tripSeed is the YAML layout of TRIP_SEED_FILE.
type tripSeed struct {
	Name      string `yaml:"name"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
	Locale    string `yaml:"locale"`
}

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func Load() (*Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvInt("SERVER_PORT", 8080),
			Secure:      getEnvBool("SERVER_SECURE", false),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvBool("DEBUG", false),
			BaseURL:     strings.TrimSuffix(getEnv("APP_BASE_URL", ""), "/"),
		},
		Database: DatabaseConfig{
			URL:            getEnvNonEmpty("DATABASE_URL", getEnv("POSTGRES_URL", "")),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "trip"),
			Password:       getEnv("DB_PASSWORD", "trip"),
			DBName:         getEnv("DB_NAME", "tripboard"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrationsPath: getEnvNonEmpty("DB_MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			URL:      getEnvNonEmpty("REDIS_URL", getEnv("KV_URL", "")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Email: EmailConfig{
			Provider:     getEnv("EMAIL_PROVIDER", "console"),
			FromAddress:  getEnv("EMAIL_FROM_ADDRESS", "noreply@tripboard.local"),
			FromName:     getEnv("EMAIL_FROM_NAME", "Tripboard"),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		},
		Auth: AuthConfig{
			TripPassword:     strings.TrimSpace(getEnv("TRIP_PASSWORD", "")),
			TripPasswordHash: getEnv("TRIP_PASSWORD_HASH", ""),
			InviteSecret:     getEnv("INVITE_SECRET", ""),
			InviteTTL:        getEnvDuration("INVITE_TTL", 30*24*time.Hour),
			SessionTTL:       getEnvDuration("SESSION_TTL", 365*24*time.Hour),
			JoinRateLimit:    int64(getEnvInt("JOIN_RATE_LIMIT", 20)),
		},
		Trip: TripConfig{
			Key:       getEnvNonEmpty("TRIP_KEY", "trip:default"),
			Name:      getEnvNonEmpty("TRIP_NAME", "Lisbon Trip"),
			StartDate: getEnvNonEmpty("TRIP_START_DATE", "2026-02-11"),
			EndDate:   getEnvNonEmpty("TRIP_END_DATE", "2026-02-15"),
			Locale:    getEnvNonEmpty("TRIP_LOCALE", "da"),
			SeedFile:  getEnv("TRIP_SEED_FILE", ""),
		},
	}

	if cfg.Trip.SeedFile != "" {
		if err := cfg.Trip.applySeedFile(cfg.Trip.SeedFile); err != nil {
			return nil, err
		}
	}

	if cfg.Auth.InviteSecret == "" {
		if cfg.Server.Environment == "production" {
			return nil, errors.New("INVITE_SECRET is required in production")
		}
		cfg.Auth.InviteSecret = "development-invite-secret"
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

func (t *TripConfig) applySeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading trip seed file: %w", err)
	}
	var seed tripSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parsing trip seed file: %w", err)
	}
	if seed.Name != "" {
		t.Name = seed.Name
	}
	if seed.StartDate != "" {
		t.StartDate = seed.StartDate
	}
	if seed.EndDate != "" {
		t.EndDate = seed.EndDate
	}
	if seed.Locale != "" {
		t.Locale = seed.Locale
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvNonEmpty(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		if strings.TrimSpace(value) != "" {
			return value
		}
		return defaultValue
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
