package config

import (
	"errors"
	"fmt"
	"net/netip"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/redmonkez12/fintrack-api/internal/auth"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Env             string        `env:"APP_ENV" envDefault:"dev"` // dev or prod
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	TrustedOrigins  []string      `env:"TRUSTED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	// Peers allowed to set X-Forwarded-For and X-Real-IP. Empty means the
	// socket address is always the client address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

type StorageConfig struct {
	Driver      string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`
}

type DatabaseConfig struct {
	Host           string `env:"DB_HOST" envDefault:"localhost"`
	Port           string `env:"DB_PORT" envDefault:"5432"`
	User           string `env:"DB_USER" envDefault:"postgres"`
	Password       string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName         string `env:"DB_NAME" envDefault:"fintrack"`
	SSLMode        string `env:"DB_SSLMODE" envDefault:"disable"`
	ChannelBinding string `env:"DB_CHANNEL_BINDING"` // "require" for Neon DB, empty for local
	MaxOpenConns   int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns   int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type AuthConfig struct {
	// Removed from the process environment once read.
	TokenSecret     string        `env:"JWT_SECRET,required,notEmpty,unset"`
	TokenFormat     string        `env:"TOKEN_FORMAT" envDefault:"jwt"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	HashAlgorithm   string        `env:"PASSWORD_HASH_ALGORITHM" envDefault:"bcrypt"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"12"`
	HashConcurrency int           `env:"PASSWORD_HASH_CONCURRENCY" envDefault:"0"`
}

type RateLimitConfig struct {
	Enabled bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Max     int           `env:"RATE_LIMIT_MAX" envDefault:"10"`
	Window  time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
}

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return parse(env.Options{})
}

// LoadDatabase reads only the database settings, for commands that do not
// serve traffic.
func LoadDatabase() (*DatabaseConfig, error) {
	_ = godotenv.Load()

	cfg := &DatabaseConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverPostgres, StorageDriverMemory, c.Storage.Driver))
	}

	if len(c.Auth.TokenSecret) < auth.MinSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d", auth.MinSecretLength, len(c.Auth.TokenSecret)))
	}

	switch c.Auth.TokenFormat {
	case auth.TokenFormatJWT, auth.TokenFormatPaseto:
	default:
		errs = append(errs, fmt.Errorf("TOKEN_FORMAT must be %q or %q, got %q", auth.TokenFormatJWT, auth.TokenFormatPaseto, c.Auth.TokenFormat))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	switch c.Auth.HashAlgorithm {
	case auth.HashBcrypt, auth.HashArgon2id:
	default:
		errs = append(errs, fmt.Errorf("PASSWORD_HASH_ALGORITHM must be %q or %q, got %q", auth.HashBcrypt, auth.HashArgon2id, c.Auth.HashAlgorithm))
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost))
	}

	if c.Auth.HashConcurrency < 0 {
		errs = append(errs, errors.New("PASSWORD_HASH_CONCURRENCY must not be negative"))
	}

	if _, err := c.Server.ProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Max <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_MAX must be positive"))
		}
		if c.RateLimit.Window <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
		}
	}

	return errors.Join(errs...)
}

func (c *DatabaseConfig) ConnectionString() string {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)

	// Add channel_binding if configured (required for Neon DB)
	if c.ChannelBinding != "" {
		connStr += fmt.Sprintf(" channel_binding=%s", c.ChannelBinding)
	}

	return connStr
}

// Address returns Redis connection address (host:port)
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDevelopment returns true if the environment is set to dev
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

// ProxyPrefixes parses TrustedProxies. Bare addresses become single-host prefixes.
func (c *ServerConfig) ProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: invalid CIDR %q: %w", raw, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: invalid address %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// HashWorkers returns the number of concurrent hash operations allowed.
func (c *AuthConfig) HashWorkers() int {
	if c.HashConcurrency > 0 {
		return c.HashConcurrency
	}
	return runtime.NumCPU()
}
