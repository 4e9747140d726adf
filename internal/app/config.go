package app

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"github.com/nukigor/ai-voxarena/internal/data/db"
	"github.com/nukigor/ai-voxarena/internal/observability"
	"github.com/nukigor/ai-voxarena/internal/platform/envutil"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
	"github.com/nukigor/ai-voxarena/internal/platform/openai"
)

type Config struct {
	Port    string
	LogMode string

	DB     db.Config
	OpenAI openai.Config

	RedisAddr     string
	TermsCacheTTL time.Duration

	AdminJWTSecret string
	CORSOrigins    []string

	MetricsEnabled bool
	Otel           observability.OtelConfig
}

// LoadDotEnv loads .env into the environment. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:    envutil.String("PORT", "8080"),
		LogMode: envutil.String("LOG_MODE", "development"),
		DB: db.Config{
			Driver:     envutil.String("DB_DRIVER", db.DriverPostgres),
			Host:       envutil.String("POSTGRES_HOST", "localhost"),
			Port:       envutil.String("POSTGRES_PORT", "5432"),
			User:       envutil.String("POSTGRES_USER", "postgres"),
			Password:   envutil.String("POSTGRES_PASSWORD", ""),
			Name:       envutil.String("POSTGRES_NAME", "voxarena"),
			SQLitePath: envutil.String("SQLITE_PATH", "./data/voxarena.db"),
		},
		OpenAI: openai.Config{
			APIKey:  envutil.String("OPENAI_API_KEY", ""),
			BaseURL: envutil.String("OPENAI_BASE_URL", ""),
			Model:   envutil.String("OPENAI_MODEL", ""),
			Timeout: envutil.Seconds("OPENAI_TIMEOUT_SECONDS", 30*time.Second),
		},
		RedisAddr:      envutil.String("REDIS_ADDR", ""),
		TermsCacheTTL:  envutil.Seconds("TAXONOMY_CACHE_TTL_SECONDS", 5*time.Minute),
		AdminJWTSecret: envutil.String("ADMIN_JWT_SECRET", ""),
		CORSOrigins:    envutil.List("CORS_ALLOWED_ORIGINS", nil),
		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "voxarena"),
			Environment: envutil.String("OTEL_ENVIRONMENT", ""),
			Version:     envutil.String("OTEL_SERVICE_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
		},
	}
	if log != nil {
		log.Info("Config loaded",
			"port", cfg.Port,
			"db_driver", cfg.DB.Driver,
			"redis", cfg.RedisAddr != "",
			"openai", cfg.OpenAI.APIKey != "",
			"admin_guard", cfg.AdminJWTSecret != "",
			"metrics", cfg.MetricsEnabled,
			"otel", cfg.Otel.Enabled,
		)
	}
	return cfg
}
