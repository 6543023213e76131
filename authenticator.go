package auth

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginResult is returned by a successful login. It carries the user's
// public fields only, the stored password hash never leaves Login.
type LoginResult struct {
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Auther struct {
	provider           IdentityProvider
	cfg                Config
	passwords          PasswordAuthenticator
	tokenService       TokenService
	customTokenService bool
	logger             Logger
	loggerProvider     LoggerProvider
	now                func() time.Time
}

var _ Authenticator = &Auther{}

// NewAuthenticator returns a new Authenticator. A nil cfg falls back to
// DefaultConfig, which has no signing key.
func NewAuthenticator(provider IdentityProvider, cfg Config) *Auther {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	a := &Auther{
		provider:  provider,
		cfg:       cfg,
		passwords: BcryptHasher{},
		now:       time.Now,
	}
	a.loggerProvider, a.logger = ResolveLogger(loggerName, nil, defaultLogger())
	a.resetTokenService()
	return a
}

// resetTokenService rebuilds the default token service from the current
// logger, clock and issuer. Injected services are left alone.
func (s *Auther) resetTokenService() {
	if s.customTokenService {
		return
	}
	s.tokenService = NewTokenService(
		WithTokenLogger(s.logger),
		WithTokenClock(s.now),
		WithTokenIssuer(s.cfg.GetIssuer()),
	)
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.loggerProvider, s.logger = ResolveLogger(loggerName, nil, logger)
	s.resetTokenService()
	return s
}

// WithLoggerProvider resolves the authenticator logger by name from provider.
func (s *Auther) WithLoggerProvider(provider LoggerProvider) *Auther {
	s.loggerProvider, s.logger = ResolveLogger(loggerName, provider, s.logger)
	s.resetTokenService()
	return s
}

// WithClock overrides the clock used to mint and verify tokens.
func (s *Auther) WithClock(now func() time.Time) *Auther {
	if now == nil {
		return s
	}
	s.now = now
	s.resetTokenService()
	return s
}

// WithPasswordAuthenticator replaces the bcrypt password checks.
func (s *Auther) WithPasswordAuthenticator(passwords PasswordAuthenticator) *Auther {
	if passwords != nil {
		s.passwords = passwords
	}
	return s
}

// WithTokenService replaces the token codec. Later WithLogger, WithClock or
// WithLoggerProvider calls do not replace an injected service.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
		s.customTokenService = true
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login checks the password of the identity behind identifier and issues a
// token for it. A zero expiresIn selects the configured default. Unknown
// identities and wrong passwords fail the same way.
func (s *Auther) Login(ctx context.Context, identifier, password string, expiresIn time.Duration) (*LoginResult, error) {
	ttl, err := ResolveTokenTTL(s.cfg, expiresIn)
	if err != nil {
		return nil, err
	}

	identity, err := s.provider.FindIdentityByIdentifier(ctx, identifier)
	if err != nil {
		s.logger.Info("Login identity lookup failed", "error", err)
		return nil, Unauthorized(MessageInvalidCredentials).WithTextCode(TextCodeInvalidCreds)
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Info("Login identity is nil or zero value")
		return nil, Unauthorized(MessageInvalidCredentials).WithTextCode(TextCodeInvalidCreds)
	}

	if err := s.passwords.ComparePasswordAndHash(password, identity.PasswordHash()); err != nil {
		s.logger.Info("Login password check failed", "user_id", identity.ID(), "error", err)
		return nil, Unauthorized(MessageInvalidCredentials).WithTextCode(TextCodeInvalidCreds)
	}

	token, expiresAt, err := s.issue(identity.ID(), ttl)
	if err != nil {
		s.logger.Error("Login failed to issue token", "user_id", identity.ID(), "error", err)
		return nil, err
	}

	return &LoginResult{
		UserID:    identity.ID(),
		Email:     identity.Email(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// issue asks the token service for the signed exp when it can report it,
// otherwise exp is derived from the authenticator clock.
func (s *Auther) issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if issuer, ok := s.tokenService.(ExpiringTokenIssuer); ok {
		return issuer.IssueWithExpiry(subject, ttl, s.cfg.GetSigningKey())
	}

	issuedAt := s.now().Truncate(jwt.TimePrecision)
	token, err := s.tokenService.Issue(subject, ttl, s.cfg.GetSigningKey())
	if err != nil {
		return "", time.Time{}, err
	}
	return token, issuedAt.Add(ttl), nil
}

// SessionFromToken verifies token with the configured secret.
func (s *Auther) SessionFromToken(token string) (Session, error) {
	return s.tokenService.Session(token, s.cfg.GetSigningKey())
}

// Authenticate extracts the bearer token from headers and verifies it.
func (s *Auther) Authenticate(headers http.Header) (Session, error) {
	token, err := GetBearerToken(headers)
	if err != nil {
		return nil, err
	}
	return s.SessionFromToken(token)
}

// UserID authenticates headers and returns only the verified subject.
func (s *Auther) UserID(headers http.Header) (string, error) {
	session, err := s.Authenticate(headers)
	if err != nil {
		return "", err
	}
	return session.GetUserID(), nil
}
