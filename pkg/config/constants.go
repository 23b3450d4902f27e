package config

// EnvPrefix scopes every environment variable read by envconfig.
const EnvPrefix = "GEARSTOCK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "GEARSTOCK_APP_ENV"
	EnvPort     = "GEARSTOCK_APP_PORT"
	EnvLogLevel = "GEARSTOCK_LOG_LEVEL"

	EnvDBDSN  = "GEARSTOCK_DB_DSN"
	EnvDBHost = "GEARSTOCK_DB_HOST"
	EnvDBUser = "GEARSTOCK_DB_USER"
	EnvDBName = "GEARSTOCK_DB_NAME"

	EnvRedisURL = "GEARSTOCK_REDIS_URL"

	EnvJWTSecret  = "GEARSTOCK_JWT_SECRET"
	EnvJWTIssuer  = "GEARSTOCK_JWT_ISSUER"
	EnvJWTExpMins = "GEARSTOCK_JWT_EXPIRATION_MINUTES"

	EnvGCPProjectID = "GEARSTOCK_GCP_PROJECT_ID"

	EnvPubSubDomainTopic  = "GEARSTOCK_PUBSUB_DOMAIN_TOPIC"
	EnvPubSubDomainSub    = "GEARSTOCK_PUBSUB_DOMAIN_SUBSCRIPTION"
	EnvPubSubAnalyticsSub = "GEARSTOCK_PUBSUB_ANALYTICS_SUBSCRIPTION"
)

// legacyDBEnvVars are the per-part variables accepted when no DSN is set.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
