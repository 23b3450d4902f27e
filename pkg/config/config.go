package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Eventing     EventingConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	BigQuery     BigQueryConfig
	Outbox       OutboxConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GEARSTOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"GEARSTOCK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GEARSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GEARSTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"GEARSTOCK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"GEARSTOCK_DB_DSN"`
	Driver string `envconfig:"GEARSTOCK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GEARSTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"GEARSTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GEARSTOCK_DB_USER"`
	LegacyPassword string `envconfig:"GEARSTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"GEARSTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"GEARSTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GEARSTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GEARSTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GEARSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GEARSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GEARSTOCK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GEARSTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"GEARSTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"GEARSTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GEARSTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GEARSTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GEARSTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GEARSTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GEARSTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GEARSTOCK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GEARSTOCK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GEARSTOCK_JWT_EXPIRATION_MINUTES" required:"true"`
}

// AccessTokenTTL returns the access token TTL configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GEARSTOCK_AUTO_MIGRATE" default:"false"`
}

type EventingConfig struct {
	ConsumerDedupeTTL time.Duration `envconfig:"GEARSTOCK_EVENTING_DEDUPE_TTL" default:"720h"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"GEARSTOCK_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"GEARSTOCK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"GEARSTOCK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	DomainTopic           string `envconfig:"GEARSTOCK_PUBSUB_DOMAIN_TOPIC" default:"gs-domain-events"`
	DomainSubscription    string `envconfig:"GEARSTOCK_PUBSUB_DOMAIN_SUBSCRIPTION"`
	AnalyticsSubscription string `envconfig:"GEARSTOCK_PUBSUB_ANALYTICS_SUBSCRIPTION" required:"true"`
}

type BigQueryConfig struct {
	Dataset             string `envconfig:"GEARSTOCK_BIGQUERY_DATASET" default:"gearstock"`
	StockMovementsTable string `envconfig:"GEARSTOCK_BIGQUERY_STOCK_MOVEMENTS_TABLE" default:"stock_movements"`
	OrderFactsTable     string `envconfig:"GEARSTOCK_BIGQUERY_ORDER_FACTS_TABLE" default:"order_facts"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"GEARSTOCK_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"GEARSTOCK_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"GEARSTOCK_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type CronConfig struct {
	Interval            time.Duration `envconfig:"GEARSTOCK_CRON_INTERVAL" default:"24h"`
	OutboxRetentionDays int           `envconfig:"GEARSTOCK_CRON_OUTBOX_RETENTION_DAYS" default:"30"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
