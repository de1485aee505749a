package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "RECIPESHARE"

// Config holds all configuration for the application
type Config struct {
	Environment Environment `ignored:"true"`

	// Server configuration
	ServerHost  string   `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ServerPort  string   `envconfig:"SERVER_PORT" default:"8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:8081,http://localhost:19006"`

	// Search configuration
	SearchBackend string        `envconfig:"SEARCH_BACKEND" default:"mock"`
	SearchDelay   time.Duration `envconfig:"SEARCH_DELAY" default:"800ms"`

	// Redis configuration. Upload rate limiting is enabled only when REDIS_URL
	// or REDIS_HOST is set
	RedisURL      string `envconfig:"REDIS_URL"`
	RedisHost     string `envconfig:"REDIS_HOST"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// Upload configuration
	UploadRateLimit  int           `envconfig:"UPLOAD_RATE_LIMIT" default:"5"`
	UploadRateWindow time.Duration `envconfig:"UPLOAD_RATE_WINDOW" default:"1h"`
	S3BucketName     string        `envconfig:"S3_BUCKET_NAME"`
	AWSRegion        string        `envconfig:"AWS_REGION" default:"us-east-1"`

	// Identity provider credentials
	IdentityPublishableKey string `envconfig:"IDENTITY_PUBLISHABLE_KEY"`
	IdentitySecret         string `envconfig:"IDENTITY_SECRET"`

	SecretsDir string `envconfig:"SECRETS_DIR" default:"/run/secrets"`
}

// secretFields maps Docker secret file names onto the fields they fill
var secretFields = map[string]func(*Config) *string{
	"identity_publishable_key": func(c *Config) *string { return &c.IdentityPublishableKey },
	"identity_secret":          func(c *Config) *string { return &c.IdentitySecret },
	"redis_password":           func(c *Config) *string { return &c.RedisPassword },
}

// LoadConfig reads the environment and secret files, then validates the result.
// A *ConfigurationError is returned together with the loaded config so the
// caller can still serve a blocking error page.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	cfg.Environment = GetEnvironment()

	// CI passes every secret through the environment
	if cfg.Environment != CI {
		loadSecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadSecrets fills empty sensitive fields from Docker secret files
func loadSecrets(cfg *Config) {
	for name, field := range secretFields {
		ptr := field(cfg)
		if *ptr != "" {
			continue
		}
		if v := readSecret(cfg.SecretsDir, name); v != "" {
			*ptr = v
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(dir, name string) string {
	if dir == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a Redis endpoint was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}
