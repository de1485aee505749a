package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RECIPESHARE_SECRETS_DIR", t.TempDir())
	t.Setenv("RECIPESHARE_SERVER_PORT", "9090")
	t.Setenv("RECIPESHARE_SEARCH_DELAY", "250ms")
	t.Setenv("RECIPESHARE_IDENTITY_PUBLISHABLE_KEY", "pk_test_123")
	t.Setenv("RECIPESHARE_IDENTITY_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, 250*time.Millisecond, cfg.SearchDelay)
	assert.Equal(t, "mock", cfg.SearchBackend)
	assert.Equal(t, 5, cfg.UploadRateLimit)
	assert.Equal(t, time.Hour, cfg.UploadRateWindow)
	assert.Equal(t, []string{"http://localhost:8081", "http://localhost:19006"}, cfg.CORSOrigins)
}

func TestRedisDisabledUnlessConfigured(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RECIPESHARE_SECRETS_DIR", t.TempDir())
	t.Setenv("RECIPESHARE_IDENTITY_PUBLISHABLE_KEY", "pk_test_123")
	t.Setenv("RECIPESHARE_IDENTITY_SECRET", "test-secret")
	t.Setenv("RECIPESHARE_REDIS_URL", "")
	t.Setenv("RECIPESHARE_REDIS_HOST", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.RedisHost)
	assert.False(t, cfg.RedisEnabled())

	t.Setenv("RECIPESHARE_REDIS_HOST", "cache.internal")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "identity_publishable_key"), []byte("pk_file\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "identity_secret"), []byte("  file-secret  "), 0o600))

	t.Setenv("CI", "")
	t.Setenv("RECIPESHARE_SECRETS_DIR", dir)
	t.Setenv("RECIPESHARE_IDENTITY_PUBLISHABLE_KEY", "")
	t.Setenv("RECIPESHARE_IDENTITY_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "pk_file", cfg.IdentityPublishableKey)
	assert.Equal(t, "file-secret", cfg.IdentitySecret)
}

func TestLoadConfigMissingCredential(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RECIPESHARE_SECRETS_DIR", t.TempDir())
	t.Setenv("RECIPESHARE_IDENTITY_PUBLISHABLE_KEY", "")
	t.Setenv("RECIPESHARE_IDENTITY_SECRET", "")

	cfg, err := LoadConfig()
	require.Error(t, err)
	require.NotNil(t, cfg)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.True(t, cfgErr.MissingCredential())
	assert.Len(t, cfgErr.Problems, 2)
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{
		IdentityPublishableKey: "pk",
		IdentitySecret:         "secret",
		SearchBackend:          "elastic",
		UploadRateLimit:        0,
		UploadRateWindow:       time.Hour,
	}

	err := ValidateConfig(cfg)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.False(t, cfgErr.MissingCredential())
	assert.Contains(t, err.Error(), "SEARCH_BACKEND")
	assert.Contains(t, err.Error(), "UPLOAD_RATE_LIMIT")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
}

func TestPresignUpload(t *testing.T) {
	client := s3.New(s3.Options{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	})
	store := &S3Config{Client: client, BucketName: "recipe-images", Region: "us-east-1"}

	url, err := store.PresignUpload(context.Background(), "uploads/abc.jpg", "image/jpeg", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "recipe-images")
	assert.Contains(t, url, "uploads/abc.jpg")
	assert.Contains(t, url, "X-Amz-Signature=")

	assert.Equal(t, "https://recipe-images.s3.amazonaws.com/uploads/abc.jpg", store.PublicURL("uploads/abc.jpg"))
}
