package config

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	School   SchoolConfig
	Reports  ReportsConfig
	Dataset  DatasetConfig
	Seed     SeedConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// Configured reports whether a database connection was supplied. When false
// the application runs on the seeded in-memory store.
func (c DatabaseConfig) Configured() bool {
	return c.Host != ""
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Configured reports whether a Redis endpoint was supplied.
func (c RedisConfig) Configured() bool {
	return c.Host != ""
}

// AuthConfig carries the single teacher credential pair and token settings.
// Password may be a bcrypt hash or a plain value; see service.AuthService.
type AuthConfig struct {
	Username   string
	Password   string
	JWTSecret  string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchoolConfig identifies the institution and the active reporting period.
type SchoolConfig struct {
	Name          string
	AcademicYear  string
	SemesterLabel string
}

// ReportsConfig pins the reporting calendar. ReportYear is the fixed year all
// monthly/semester report ranges are computed against; StartMonth is the
// month preselected in report views (1-12).
type ReportsConfig struct {
	ReportYear int
	StartMonth int
}

// DatasetConfig governs view-model assembly behaviour: the default teaching
// day mask for classes with no schedule, the client-side write debounce hint,
// and the cache TTL for the assembled dataset.
type DatasetConfig struct {
	DefaultSchedule []int
	WriteDebounce   time.Duration
	CacheTTL        time.Duration
}

// SeedConfig toggles the demo dataset used by the in-memory fallback.
type SeedConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Username:   v.GetString("TEACHER_USERNAME"),
		Password:   v.GetString("TEACHER_PASSWORD"),
		JWTSecret:  v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.School = SchoolConfig{
		Name:          v.GetString("SCHOOL_NAME"),
		AcademicYear:  v.GetString("SCHOOL_ACADEMIC_YEAR"),
		SemesterLabel: v.GetString("SCHOOL_SEMESTER_LABEL"),
	}

	cfg.Reports = ReportsConfig{
		ReportYear: v.GetInt("REPORT_YEAR"),
		StartMonth: v.GetInt("REPORT_START_MONTH"),
	}

	cfg.Dataset = DatasetConfig{
		DefaultSchedule: parseSchedule(v.GetString("DEFAULT_SCHEDULE")),
		WriteDebounce:   parseDuration(v.GetString("WRITE_DEBOUNCE"), 800*time.Millisecond),
		CacheTTL:        parseDuration(v.GetString("DATASET_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Seed = SeedConfig{Enabled: v.GetBool("SEED_DEMO_DATA")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "absensi")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("TEACHER_USERNAME", "guru")
	v.SetDefault("TEACHER_PASSWORD", "guru123")
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHOOL_NAME", "SMA Negeri 1")
	v.SetDefault("SCHOOL_ACADEMIC_YEAR", "2025/2026")
	v.SetDefault("SCHOOL_SEMESTER_LABEL", "Semester Genap")

	v.SetDefault("REPORT_YEAR", 2026)
	v.SetDefault("REPORT_START_MONTH", 1)

	v.SetDefault("DEFAULT_SCHEDULE", "1,2,3,4,5")
	v.SetDefault("WRITE_DEBOUNCE", "800ms")
	v.SetDefault("DATASET_CACHE_TTL", "5m")

	v.SetDefault("SEED_DEMO_DATA", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// parseSchedule reads a comma separated weekday mask, keeping only distinct
// values in the Monday..Friday range.
func parseSchedule(raw string) []int {
	seen := map[int]bool{}
	days := make([]int, 0, 5)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		day, err := strconv.Atoi(trimmed)
		if err != nil || day < 1 || day > 5 || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}
