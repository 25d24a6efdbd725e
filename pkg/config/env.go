package config

// EnvPrefix scopes every environment variable this service reads.
const EnvPrefix = "STOCKROOM"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	EnvAppEnv   = "STOCKROOM_APP_ENV"
	EnvAppPort  = "STOCKROOM_APP_PORT"
	EnvTimezone = "STOCKROOM_TIMEZONE"
	EnvDBDriver = "STOCKROOM_DB_DRIVER"
	EnvDBPath   = "STOCKROOM_DB_PATH"
	EnvDBDSN    = "STOCKROOM_DB_DSN"
)
