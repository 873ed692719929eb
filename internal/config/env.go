package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"

	DefaultFormRelayURL = "https://api.web3forms.com/submit"
	DefaultAdminEmail   = "admin@example.com"

	demoAdminPassword = "admin123"
	devJWTSecret      = "bikie-dev-secret-change-me"
)

type Env struct {
	AppAddr     string
	GinMode     string
	Environment string
	LogLevel    string

	StoreDriver string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBName      string
	SeedFile    string

	FormRelayURL       string
	FormRelayAccessKey string
	FormRelayTimeout   time.Duration

	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration

	CORSAllowedOrigins []string
}

func (e Env) IsProduction() bool {
	return strings.EqualFold(e.Environment, "production")
}

// LoadEnv reads .env (when present) and then the process environment.
// Variables already set in the environment win over the file.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to read .env: %v\n", err)
	}

	env := Env{
		AppAddr:     getenv("APP_ADDR", ":8080"),
		GinMode:     getenv("GIN_MODE", ""),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", StoreMemory)),
		DBUser:      getenv("DB_USER", "root"),
		DBPassword:  getenv("DB_PASSWORD", ""),
		DBHost:      getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:      getenv("DB_NAME", "bikie"),
		SeedFile:    getenv("SEED_FILE", ""),

		FormRelayURL:       getenv("FORM_RELAY_URL", DefaultFormRelayURL),
		FormRelayAccessKey: getenv("FORM_RELAY_ACCESS_KEY", ""),
		FormRelayTimeout:   getduration("FORM_RELAY_TIMEOUT", 20*time.Second),

		AdminEmail:        getenv("ADMIN_EMAIL", DefaultAdminEmail),
		AdminPassword:     getenv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getenv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getenv("JWT_SECRET", ""),
		TokenTTL:          getduration("ADMIN_TOKEN_TTL", 12*time.Hour),
	}

	if origins := getenv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	}

	if !env.IsProduction() {
		if env.AdminPasswordHash == "" && env.AdminPassword == "" {
			env.AdminPassword = demoAdminPassword
		}
		if env.JWTSecret == "" {
			env.JWTSecret = devJWTSecret
		}
	}
	return env
}

// Validate rejects settings the server cannot run with.
func (e Env) Validate() error {
	var errs []error
	switch e.StoreDriver {
	case StoreMemory, StoreMySQL:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMemory, StoreMySQL, e.StoreDriver))
	}
	if e.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if e.AdminPasswordHash == "" && e.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required in production"))
	}
	if e.IsProduction() && e.FormRelayAccessKey == "" {
		errs = append(errs, errors.New("FORM_RELAY_ACCESS_KEY is required in production"))
	}
	if e.FormRelayTimeout <= 0 {
		errs = append(errs, errors.New("FORM_RELAY_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid %s=%q, using %s\n", key, raw, fallback)
		return fallback
	}
	return d
}
