package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Seed    SeedConfig
	HTTP    HTTPConfig
	Swagger SwaggerConfig
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
	Env          string `envconfig:"SHOPPINGCART_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPPINGCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPPINGCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPPINGCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN         string `envconfig:"SHOPPINGCART_DB_DSN"`
	Driver      string `envconfig:"SHOPPINGCART_DB_DRIVER" default:"sqlite"`
	AutoMigrate bool   `envconfig:"SHOPPINGCART_AUTO_MIGRATE" default:"true"`

	LegacyHost     string `envconfig:"SHOPPINGCART_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPPINGCART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPPINGCART_DB_USER"`
	LegacyPassword string `envconfig:"SHOPPINGCART_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPPINGCART_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPPINGCART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPPINGCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPPINGCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPPINGCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPPINGCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// NormalizedDriver returns the lower-cased driver name.
func (db DBConfig) NormalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(db.Driver))
}

// SeedConfig locates the JSON document used to populate an empty store.
type SeedConfig struct {
	File    string `envconfig:"SHOPPINGCART_SEED_FILE" default:"seededData.json"`
	BaseDir string `envconfig:"SHOPPINGCART_BASE_DIR"`
}

type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"SHOPPINGCART_CORS_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SHOPPINGCART_SHUTDOWN_TIMEOUT" default:"10s"`
}

type SwaggerConfig struct {
	Enabled *bool `envconfig:"SHOPPINGCART_SWAGGER_ENABLED"`
}

// SwaggerEnabled reports whether the swagger UI is mounted. Unset means on
// everywhere except prod.
func (c *Config) SwaggerEnabled() bool {
	if c.Swagger.Enabled != nil {
		return *c.Swagger.Enabled
	}
	return !c.App.IsProd()
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	switch db.NormalizedDriver() {
	case DriverSQLite:
		db.DSN = DefaultSQLiteDSN
		return nil
	case DriverPostgres:
	default:
		return fmt.Errorf("%s is required for driver %q", EnvDBDSN, db.Driver)
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
