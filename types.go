package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Logger is the structured logger used across the package.
type Logger = glog.Logger

// LoggerProvider hands out named loggers.
type LoggerProvider = glog.LoggerProvider

const loggerName = "auth"

func defaultLogger() Logger {
	return glog.NewLogger(
		glog.WithName(loggerName),
		glog.WithLoggerTypeConsole(),
		glog.WithLevel(glog.Info),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
}

// ResolveLogger picks the logger for name, preferring the provider, then
// the logger, then a no-op logger.
func ResolveLogger(name string, provider LoggerProvider, logger Logger) (LoggerProvider, Logger) {
	return glog.Resolve(name, provider, logger)
}

// Session holds attributes of a verified token
type Session interface {
	GetUserID() string
	GetUserUUID() (uuid.UUID, error)
	GetIssuer() string
	GetIssuedAt() *time.Time
	GetExpiresAt() *time.Time
}

// Identity holds the attributes of a stored user record
type Identity interface {
	ID() string
	Email() string
	PasswordHash() string
}

// IdentityProvider resolves identities from the external user store
type IdentityProvider interface {
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// PasswordAuthenticator hashes and verifies passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// TokenService issues and verifies signed identity tokens
type TokenService interface {
	Issue(subject string, expiresIn time.Duration, secret string) (string, error)
	Verify(tokenString, secret string) (string, error)
	Session(tokenString, secret string) (Session, error)
}

// ExpiringTokenIssuer is implemented by token services that can report the
// expiry they signed without the caller decoding the token.
type ExpiringTokenIssuer interface {
	IssueWithExpiry(subject string, expiresIn time.Duration, secret string) (string, time.Time, error)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, identifier, password string, expiresIn time.Duration) (*LoginResult, error)
	SessionFromToken(token string) (Session, error)
	Authenticate(headers http.Header) (Session, error)
}
