package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRY_MINUTES", "")
	t.Setenv("OAUTH_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 60, cfg.JWT.ExpiryMinutes)
	assert.False(t, cfg.OAuth.Enabled)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "apikey", cfg.Email.SMTPUser)
	assert.Equal(t, 5, cfg.Worker.Concurrency)
}

func TestLoad_OAuthRequiresCredentials(t *testing.T) {
	t.Setenv("OAUTH_ENABLED", "true")
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
}

func TestLoad_ProductionRejectsDefaultSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "pw")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_MINUTES", "abc")
	t.Setenv("OAUTH_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.JWT.ExpiryMinutes)
	assert.False(t, cfg.OAuth.Enabled)
}

func TestOAuthConfig_CallbackURL(t *testing.T) {
	o := OAuthConfig{CallbackPath: "/auth/google/callback"}
	assert.Equal(t, "https://api.example.com/auth/google/callback", o.CallbackURL("https://api.example.com/"))
}

func TestLoad_DatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("DB_MIN_CONNS", "")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	db := cfg.Database.DBConfig()
	assert.Equal(t, 6543, db.Port)
	assert.Equal(t, int32(25), db.MaxConns)
	assert.Equal(t, int32(2), db.MinConns)
	assert.Equal(t, 250*time.Millisecond, db.RetryDelay)
	assert.Equal(t, 10*time.Second, db.ConnectTimeout)
	assert.Equal(t, cfg.Database.Password, db.Password)
}

func TestLoad_DatabaseConfigInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DB_CONNECT_TIMEOUT", "soon"},
		{"DB_PORT", "five"},
		{"DB_MAX_CONNS", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_ProductionRequiresDBPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
