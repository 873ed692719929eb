package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_ADDR", "GIN_MODE", "ENVIRONMENT", "LOG_LEVEL", "STORE_DRIVER",
	"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_NAME", "SEED_FILE",
	"FORM_RELAY_URL", "FORM_RELAY_ACCESS_KEY", "FORM_RELAY_TIMEOUT",
	"ADMIN_EMAIL", "ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH", "JWT_SECRET", "ADMIN_TOKEN_TTL",
	"CORS_ALLOWED_ORIGINS",
}

// clearEnv blanks every variable LoadEnv reads; getenv treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	clearEnv(t)

	env := LoadEnv()
	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, "development", env.Environment)
	assert.Equal(t, StoreMemory, env.StoreDriver)
	assert.Equal(t, DefaultFormRelayURL, env.FormRelayURL)
	assert.Equal(t, 20*time.Second, env.FormRelayTimeout)
	assert.Equal(t, DefaultAdminEmail, env.AdminEmail)
	assert.Equal(t, "admin123", env.AdminPassword)
	assert.NotEmpty(t, env.JWTSecret)
	assert.Empty(t, env.CORSAllowedOrigins)
	assert.NoError(t, env.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("STORE_DRIVER", "MySQL")
	t.Setenv("FORM_RELAY_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bikie.in, ,http://localhost:5173")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")

	env := LoadEnv()
	assert.Equal(t, ":9090", env.AppAddr)
	assert.Equal(t, StoreMySQL, env.StoreDriver)
	assert.Equal(t, 5*time.Second, env.FormRelayTimeout)
	assert.Equal(t, []string{"https://bikie.in", "http://localhost:5173"}, env.CORSAllowedOrigins)
	assert.Empty(t, env.AdminPassword, "explicit hash must not be paired with the demo password")
}

func TestLoadEnvInvalidDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("FORM_RELAY_TIMEOUT", "soon")

	assert.Equal(t, 20*time.Second, LoadEnv().FormRelayTimeout)
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	env := LoadEnv()
	assert.Empty(t, env.JWTSecret)
	assert.Empty(t, env.AdminPassword)

	err := env.Validate()
	require.Error(t, err)
	for _, want := range []string{"JWT_SECRET", "ADMIN_PASSWORD", "FORM_RELAY_ACCESS_KEY"} {
		assert.True(t, strings.Contains(err.Error(), want), "missing %s in %q", want, err.Error())
	}
}

func TestValidateRejectsUnknownStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "redis")

	assert.ErrorContains(t, LoadEnv().Validate(), "STORE_DRIVER")
}

func TestDSN(t *testing.T) {
	env := Env{DBUser: "bikie", DBPassword: "pw", DBHost: "db:3306", DBName: "rentals"}
	dsn := env.DSN()
	assert.True(t, strings.HasPrefix(dsn, "bikie:pw@tcp(db:3306)/rentals?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
