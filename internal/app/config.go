package app

import (
	"strings"
	"time"

	"github.com/yungbote/practice-backend/internal/data/db"
	"github.com/yungbote/practice-backend/internal/platform/envutil"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type Config struct {
	LogMode     string
	ServiceName string
	Environment string
	Version     string

	HTTPAddr      string
	ShutdownGrace time.Duration
	AllowOrigins  []string

	DB db.Config

	JWTSecretKey string

	RedisAddr           string
	RedisChannel        string
	RedisCachePrefix    string
	QuestionSetCacheTTL time.Duration

	PolicyPath           string
	ReconcileCron        string
	ReconcileConcurrency int
	ReconcileTimeout     time.Duration
}

// LoadConfig reads the process environment. Call envutil.LoadDotEnv first to pick up .env.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		LogMode:     envutil.String("LOG_MODE", "development"),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "practice-backend"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),

		HTTPAddr:      envutil.String("HTTP_ADDR", ":8080"),
		ShutdownGrace: envutil.Seconds("HTTP_SHUTDOWN_GRACE_SECONDS", 15*time.Second),
		AllowOrigins:  splitList(envutil.String("CORS_ALLOW_ORIGINS", "")),

		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "practice"),
			SQLitePath:       envutil.String("SQLITE_PATH", "practice.db"),
		},

		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),

		RedisAddr:           envutil.String("REDIS_ADDR", ""),
		RedisChannel:        envutil.String("REDIS_CHANNEL", "practice.events"),
		RedisCachePrefix:    envutil.String("REDIS_CACHE_PREFIX", "practice:"),
		QuestionSetCacheTTL: envutil.Seconds("QUESTION_SET_CACHE_TTL_SECONDS", 5*time.Minute),

		PolicyPath:           envutil.String("PROFICIENCY_POLICY_YAML", ""),
		ReconcileCron:        envutil.String("PROFICIENCY_RECONCILE_CRON", "@every 1h"),
		ReconcileConcurrency: envutil.Int("PROFICIENCY_RECONCILE_CONCURRENCY", 4),
		ReconcileTimeout:     envutil.Seconds("PROFICIENCY_RECONCILE_TIMEOUT_SECONDS", 30*time.Minute),
	}
	if strings.EqualFold(cfg.ReconcileCron, "off") {
		cfg.ReconcileCron = ""
	}
	if log != nil {
		log.Info("config loaded",
			"db_driver", cfg.DB.Driver,
			"http_addr", cfg.HTTPAddr,
			"redis", cfg.RedisAddr != "",
			"policy_path", cfg.PolicyPath,
			"reconcile_cron", cfg.ReconcileCron,
		)
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
