package config

const EnvPrefix = "BITSTORE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "BITSTORE_APP_ENV"
	EnvPort     = "BITSTORE_APP_PORT"
	EnvDBDSN    = "BITSTORE_DB_DSN"
	EnvDBHost   = "BITSTORE_DB_HOST"
	EnvDBUser   = "BITSTORE_DB_USER"
	EnvDBName   = "BITSTORE_DB_NAME"
	EnvRedisURL = "BITSTORE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
