package config

import (
	"net/netip"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/fintrack-api/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func parseEnv(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parseEnv(map[string]string{"JWT_SECRET": testSecret})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.TrustedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, auth.TokenFormatJWT, cfg.Auth.TokenFormat)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, auth.HashBcrypt, cfg.Auth.HashAlgorithm)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, runtime.NumCPU(), cfg.Auth.HashWorkers())
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Max)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
}

func TestParseOverrides(t *testing.T) {
	cfg, err := parseEnv(map[string]string{
		"JWT_SECRET":                testSecret,
		"APP_ENV":                   "prod",
		"TOKEN_FORMAT":              "paseto",
		"TOKEN_TTL":                 "2h",
		"STORAGE_DRIVER":            "memory",
		"PASSWORD_HASH_ALGORITHM":   "argon2id",
		"PASSWORD_HASH_CONCURRENCY": "3",
		"TRUSTED_ORIGINS":           "https://a.example,https://b.example",
		"DB_CHANNEL_BINDING":        "require",
	})
	require.NoError(t, err)

	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, auth.TokenFormatPaseto, cfg.Auth.TokenFormat)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, auth.HashArgon2id, cfg.Auth.HashAlgorithm)
	assert.Equal(t, 3, cfg.Auth.HashWorkers())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.TrustedOrigins)
	assert.True(t, strings.HasSuffix(cfg.Database.ConnectionString(), " channel_binding=require"))
}

func TestParseRequiresSecret(t *testing.T) {
	_, err := parseEnv(map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"short secret", map[string]string{"JWT_SECRET": "too-short"}, "JWT_SECRET must be at least 32 bytes"},
		{"token format", map[string]string{"JWT_SECRET": testSecret, "TOKEN_FORMAT": "saml"}, "TOKEN_FORMAT"},
		{"storage driver", map[string]string{"JWT_SECRET": testSecret, "STORAGE_DRIVER": "sqlite"}, "STORAGE_DRIVER"},
		{"hash algorithm", map[string]string{"JWT_SECRET": testSecret, "PASSWORD_HASH_ALGORITHM": "md5"}, "PASSWORD_HASH_ALGORITHM"},
		{"bcrypt cost", map[string]string{"JWT_SECRET": testSecret, "BCRYPT_COST": "2"}, "BCRYPT_COST"},
		{"ttl", map[string]string{"JWT_SECRET": testSecret, "TOKEN_TTL": "0s"}, "TOKEN_TTL"},
		{"trusted proxies", map[string]string{"JWT_SECRET": testSecret, "TRUSTED_PROXIES": "10.0.0.0/33"}, "TRUSTED_PROXIES"},
		{"rate limit", map[string]string{"JWT_SECRET": testSecret, "RATE_LIMIT_MAX": "0"}, "RATE_LIMIT_MAX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseEnv(tt.vars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRateLimitChecksSkippedWhenDisabled(t *testing.T) {
	_, err := parseEnv(map[string]string{
		"JWT_SECRET":         testSecret,
		"RATE_LIMIT_ENABLED": "false",
		"RATE_LIMIT_MAX":     "0",
	})
	require.NoError(t, err)
}

func TestProxyPrefixes(t *testing.T) {
	cfg, err := parseEnv(map[string]string{
		"JWT_SECRET":      testSecret,
		"TRUSTED_PROXIES": "10.0.0.0/8, 192.168.1.7,::1",
	})
	require.NoError(t, err)

	prefixes, err := cfg.Server.ProxyPrefixes()
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.7/32"),
		netip.MustParsePrefix("::1/128"),
	}, prefixes)

	cfg, err = parseEnv(map[string]string{"JWT_SECRET": testSecret})
	require.NoError(t, err)
	prefixes, err = cfg.Server.ProxyPrefixes()
	require.NoError(t, err)
	assert.Empty(t, prefixes)
}
