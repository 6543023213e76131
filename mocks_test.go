package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/chirpy-social/auth"
	"github.com/goliatone/go-logger/glog"
	"github.com/stretchr/testify/mock"
)

// MockIdentityProvider implements auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

// testUser is a stored user record
type testUser struct {
	id    string
	email string
	hash  string
}

func (u *testUser) ID() string           { return u.id }
func (u *testUser) Email() string        { return u.email }
func (u *testUser) PasswordHash() string { return u.hash }

// MockTokenService implements auth.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(subject string, expiresIn time.Duration, secret string) (string, error) {
	args := m.Called(subject, expiresIn, secret)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(tokenString, secret string) (string, error) {
	args := m.Called(tokenString, secret)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Session(tokenString, secret string) (auth.Session, error) {
	args := m.Called(tokenString, secret)
	session, _ := args.Get(0).(auth.Session)
	return session, args.Error(1)
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recordingLogger captures log calls so tests can assert on them
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

var _ glog.Logger = &recordingLogger{}

func (l *recordingLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Trace(msg string, args ...any) { l.record("trace", msg, args) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args) }

func (l *recordingLogger) WithContext(ctx context.Context) glog.Logger {
	return l
}

func (l *recordingLogger) levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.level)
	}
	return out
}

// staticConfig is an auth.Config with fixed values
type staticConfig struct {
	secret   string
	issuer   string
	ttl      time.Duration
	maxTTL   time.Duration
	platform string
}

func (c staticConfig) GetSigningKey() string                { return c.secret }
func (c staticConfig) GetTokenExpiration() time.Duration    { return c.ttl }
func (c staticConfig) GetMaxTokenExpiration() time.Duration { return c.maxTTL }
func (c staticConfig) GetPlatform() string                  { return c.platform }

func (c staticConfig) GetIssuer() string {
	if c.issuer == "" {
		return auth.TokenIssuer
	}
	return c.issuer
}
