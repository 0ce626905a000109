package config_test

import (
	"testing"
	"time"

	"cardtrail/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "key")
	t.Setenv("TRELLO_TOKEN", "token")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.trello.com/1", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.NoError(t, cfg.ValidateCredentials())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "key")
	t.Setenv("TRELLO_TOKEN", "token")
	t.Setenv("TRELLO_BASE_URL", "http://localhost:9999/1")
	t.Setenv("CARDTRAIL_HTTP_TIMEOUT", "5s")
	t.Setenv("CARDTRAIL_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/1", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		token   string
		wantErr bool
	}{
		{"both set", "k", "t", false},
		{"missing key", "", "t", true},
		{"missing token", "k", "", true},
		{"missing both", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{APIKey: tt.key, Token: tt.token}
			err := cfg.ValidateCredentials()
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrMissingCredentials)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
