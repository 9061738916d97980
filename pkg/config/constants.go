package config

const EnvPrefix = "SHOPPINGCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	DefaultSQLiteDSN = "shoppingcart.db"
)

const (
	EnvAppEnv   = "SHOPPINGCART_APP_ENV"
	EnvPort     = "SHOPPINGCART_APP_PORT"
	EnvLogLevel = "SHOPPINGCART_LOG_LEVEL"

	EnvDBDSN    = "SHOPPINGCART_DB_DSN"
	EnvDBDriver = "SHOPPINGCART_DB_DRIVER"
	EnvDBHost   = "SHOPPINGCART_DB_HOST"
	EnvDBUser   = "SHOPPINGCART_DB_USER"
	EnvDBName   = "SHOPPINGCART_DB_NAME"

	EnvAutoMigrate    = "SHOPPINGCART_AUTO_MIGRATE"
	EnvSeedFile       = "SHOPPINGCART_SEED_FILE"
	EnvBaseDir        = "SHOPPINGCART_BASE_DIR"
	EnvSwaggerEnabled = "SHOPPINGCART_SWAGGER_ENABLED"
	EnvCORSOrigins    = "SHOPPINGCART_CORS_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
