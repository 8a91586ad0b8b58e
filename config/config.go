package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type StorageOptions struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"STORAGE_DSN" envDefault:"rental-admin.db"`

	// MySQL connection parts, used when STORAGE_DSN is not a full DSN.
	URL      string `env:"MYSQL_URL"`
	User     string `env:"DB_USER" envDefault:"root"`
	Password string `env:"DB_PASS"`
	Host     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port     string `env:"DB_PORT" envDefault:"3306"`
	Name     string `env:"DB_NAME" envDefault:"rental_admin"`

	MaxOpenConns int `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
}

type ToastOptions struct {
	Policy   string        `env:"TOAST_POLICY" envDefault:"replace"`
	Duration time.Duration `env:"TOAST_DURATION" envDefault:"4s"`
}

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:3000/api"`
	StaticDir      string        `env:"STATIC_DIR" envDefault:"./web"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:","`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	SIDCookie      string        `env:"SID_COOKIE" envDefault:"sid"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	MetricsPath    string        `env:"METRICS_PATH" envDefault:"/metrics"`
	GinMode        string        `env:"GIN_MODE" envDefault:"debug"`

	Storage StorageOptions
	Toast   ToastOptions
}

// Load reads the optional .env files and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	existing := make([]string, 0, len(envFiles))
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, errors.Wrap(err, "load env files")
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return errors.New("API_BASE_URL is required")
	}
	switch c.Toast.Policy {
	case "replace", "stack":
	default:
		return errors.Errorf("TOAST_POLICY must be 'replace' or 'stack', got '%s'", c.Toast.Policy)
	}
	if c.Toast.Duration < 3*time.Second || c.Toast.Duration > 5*time.Second {
		return errors.Errorf("TOAST_DURATION must be between 3s and 5s, got %s", c.Toast.Duration)
	}
	switch c.Storage.Driver {
	case "sqlite", "mysql":
	default:
		return errors.Errorf("unsupported storage driver: %s", c.Storage.Driver)
	}
	return nil
}

// AllowedOrigins trims the configured CORS origins and falls back to "*".
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.CORSOrigins))
	for _, part := range c.CORSOrigins {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
