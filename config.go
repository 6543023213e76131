package auth

import (
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
)

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetTokenExpiration() time.Duration
	GetMaxTokenExpiration() time.Duration
	GetPlatform() string
}

var issuerPattern = regexp.MustCompile(`^\S+$`)

// PlatformDev is the platform on which destructive admin operations are allowed.
const PlatformDev = "dev"

// EnvConfig is a Config bound to environment variables.
type EnvConfig struct {
	SigningKey         string        `env:"JWT_SECRET"`
	Issuer             string        `env:"JWT_ISSUER" envDefault:"chirpy"`
	TokenExpiration    time.Duration `env:"JWT_TTL" envDefault:"1h"`
	MaxTokenExpiration time.Duration `env:"JWT_MAX_TTL" envDefault:"1h"`
	Platform           string        `env:"PLATFORM" envDefault:"dev"`
}

var _ Config = EnvConfig{}

// DefaultConfig returns the environment defaults with no signing key. Token
// operations fail with ErrSecretRequired until a key is set.
func DefaultConfig() EnvConfig {
	return EnvConfig{
		Issuer:             TokenIssuer,
		TokenExpiration:    time.Hour,
		MaxTokenExpiration: time.Hour,
		Platform:           PlatformDev,
	}
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (EnvConfig, error) {
	return loadConfig(env.Options{})
}

// LoadConfigFrom reads the configuration from the given key/value set
// instead of the process environment.
func LoadConfigFrom(environment map[string]string) (EnvConfig, error) {
	return loadConfig(env.Options{Environment: environment})
}

func loadConfig(opts env.Options) (EnvConfig, error) {
	cfg, err := env.ParseAsWithOptions[EnvConfig](opts)
	if err != nil {
		return EnvConfig{}, errors.Wrap(err, errors.CategoryValidation, "failed to parse auth config").
			WithCode(errors.CodeBadRequest)
	}

	if err := cfg.Validate(); err != nil {
		return EnvConfig{}, err
	}

	return cfg, nil
}

// Validate checks the configuration is usable for signing tokens.
func (c EnvConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.SigningKey, validation.Required),
		validation.Field(&c.Issuer, validation.Required, validation.Match(issuerPattern)),
		validation.Field(&c.TokenExpiration, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.MaxTokenExpiration, validation.Required, validation.Min(c.TokenExpiration)),
		validation.Field(&c.Platform, validation.Required),
	)
	if err != nil {
		return errors.FromOzzoValidation(err, "invalid auth config")
	}
	return nil
}

func (c EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c EnvConfig) GetIssuer() string {
	return c.Issuer
}

func (c EnvConfig) GetTokenExpiration() time.Duration {
	return c.TokenExpiration
}

func (c EnvConfig) GetMaxTokenExpiration() time.Duration {
	return c.MaxTokenExpiration
}

func (c EnvConfig) GetPlatform() string {
	return c.Platform
}

// RequirePlatform fails with Forbidden unless cfg runs on platform.
func RequirePlatform(cfg Config, platform string) error {
	if cfg == nil || cfg.GetPlatform() != platform {
		return Forbidden(MessageForbiddenPlatform)
	}
	return nil
}

// ResolveTokenTTL applies the login expiry policy: zero selects the
// configured default and anything above the configured maximum is clamped.
func ResolveTokenTTL(cfg Config, requested time.Duration) (time.Duration, error) {
	if requested < 0 {
		return 0, BadRequest("token expiration must be non-negative")
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}

	ttl := cfg.GetTokenExpiration()
	if requested > 0 {
		ttl = requested
	}

	if maxTTL := cfg.GetMaxTokenExpiration(); maxTTL > 0 && ttl > maxTTL {
		ttl = maxTTL
	}
	return ttl, nil
}
