package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != AppEnvDev {
		t.Fatalf("expected App.Env to default to dev, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.App.Port)
	}
	if cfg.DB.NormalizedDriver() != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.DB.Driver)
	}
	if cfg.DB.DSN != DefaultSQLiteDSN {
		t.Fatalf("expected default sqlite dsn, got %q", cfg.DB.DSN)
	}
	if !cfg.DB.AutoMigrate {
		t.Fatal("expected auto migrate to default on")
	}
	if cfg.Seed.File != "seededData.json" {
		t.Fatalf("unexpected seed file %q", cfg.Seed.File)
	}
	if got := cfg.HTTP.ShutdownTimeout; got != 10*time.Second {
		t.Fatalf("expected shutdown timeout 10s, got %v", got)
	}
	if !cfg.SwaggerEnabled() {
		t.Fatal("expected swagger enabled outside prod")
	}
}

func TestLoad_PostgresFromLegacyParts(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDBDriver, "postgres")
	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBUser, "cart")
	t.Setenv(EnvDBName, "shoppingcart")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	want := "postgres://cart@localhost:5432/shoppingcart?sslmode=disable"
	if cfg.DB.DSN != want {
		t.Fatalf("expected dsn %q, got %q", want, cfg.DB.DSN)
	}
}

func TestLoad_PostgresMissingParts(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDBDriver, "postgres")
	t.Setenv(EnvDBHost, "localhost")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing legacy db env to return an error")
	}
}

func TestLoad_MySQLRequiresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDBDriver, "mysql")

	if _, err := Load(); err == nil {
		t.Fatal("expected mysql without dsn to fail")
	}
}

func TestLoad_CORSOriginsList(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCORSOrigins, "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.HTTP.CORSOrigins)
	}
}

func TestSwaggerEnabledOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAppEnv, "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.SwaggerEnabled() {
		t.Fatal("expected swagger off in prod by default")
	}

	t.Setenv(EnvSwaggerEnabled, "true")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.SwaggerEnabled() {
		t.Fatal("expected explicit flag to enable swagger")
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvAppEnv, EnvPort, EnvLogLevel, EnvDBDSN, EnvDBDriver, EnvDBHost, EnvDBUser, EnvDBName,
		EnvAutoMigrate, EnvSeedFile, EnvBaseDir, EnvSwaggerEnabled, EnvCORSOrigins,
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}
