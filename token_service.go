package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenIssuer identifies this service in the iss claim.
const TokenIssuer = "chirpy"

// TokenServiceImpl implements the TokenService interface. It holds no
// secret, callers pass one on every call.
type TokenServiceImpl struct {
	issuer string
	now    func() time.Time
	logger Logger
}

// TokenServiceOption configures a TokenServiceImpl
type TokenServiceOption func(*TokenServiceImpl)

// WithTokenClock overrides the clock used for iat, exp and expiry checks.
func WithTokenClock(now func() time.Time) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if now != nil {
			ts.now = now
		}
	}
}

// WithTokenIssuer overrides the iss claim written and required by the service.
func WithTokenIssuer(issuer string) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if issuer != "" {
			ts.issuer = issuer
		}
	}
}

// WithTokenLogger sets the logger used to report rejected tokens.
func WithTokenLogger(logger Logger) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if logger != nil {
			ts.logger = logger
		}
	}
}

// NewTokenService creates a new TokenService instance
func NewTokenService(opts ...TokenServiceOption) *TokenServiceImpl {
	ts := &TokenServiceImpl{
		issuer: TokenIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(ts)
	}
	if ts.logger == nil {
		ts.logger = defaultLogger()
	}
	return ts
}

var defaultTokenService = NewTokenService()

var _ ExpiringTokenIssuer = &TokenServiceImpl{}

// MakeJWT issues a token for subject that expires after expiresIn.
func MakeJWT(subject string, expiresIn time.Duration, secret string) (string, error) {
	return defaultTokenService.Issue(subject, expiresIn, secret)
}

// ValidateJWT verifies tokenString and returns its subject.
func ValidateJWT(tokenString, secret string) (string, error) {
	return defaultTokenService.Verify(tokenString, secret)
}

// Issue signs the claim set {iss, sub, iat, exp} with HS256. A negative
// expiresIn yields a token that is already expired.
func (ts *TokenServiceImpl) Issue(subject string, expiresIn time.Duration, secret string) (string, error) {
	token, _, err := ts.IssueWithExpiry(subject, expiresIn, secret)
	return token, err
}

// IssueWithExpiry is Issue that also reports the exp claim it signed.
func (ts *TokenServiceImpl) IssueWithExpiry(subject string, expiresIn time.Duration, secret string) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrSecretRequired
	}

	issuedAt := jwt.NewNumericDate(ts.now())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(expiresIn))
	claims := &jwt.RegisteredClaims{
		Issuer:    ts.issuer,
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT").
			WithCode(errors.CodeInternal)
	}

	return signedString, expiresAt.Time, nil
}

// Issuer returns the iss claim this service writes and accepts.
func (ts *TokenServiceImpl) Issuer() string {
	return ts.issuer
}

// Verify authenticates tokenString and returns its subject.
func (ts *TokenServiceImpl) Verify(tokenString, secret string) (string, error) {
	claims, err := ts.Claims(tokenString, secret)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Session verifies tokenString and exposes its claims as a Session.
func (ts *TokenServiceImpl) Session(tokenString, secret string) (Session, error) {
	claims, err := ts.Claims(tokenString, secret)
	if err != nil {
		return nil, err
	}
	return SessionFromClaims(claims), nil
}

// Claims verifies tokenString and returns its registered claims. Checks run
// in a fixed order: signature and expiry, then issuer, then subject.
func (ts *TokenServiceImpl) Claims(tokenString, secret string) (*jwt.RegisteredClaims, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)

	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		ts.logger.Debug("TokenService rejected token", "error", err)
		return nil, invalidTokenError(err)
	}

	if !token.Valid {
		ts.logger.Debug("TokenService could not validate claims")
		return nil, Unauthorized(MessageInvalidToken).WithTextCode(TextCodeTokenMalformed)
	}

	if claims.Issuer != ts.issuer {
		ts.logger.Debug("TokenService rejected issuer", "issuer", claims.Issuer)
		return nil, Unauthorized(MessageInvalidIssuer).WithTextCode(TextCodeInvalidIssuer)
	}

	if claims.Subject == "" {
		return nil, Unauthorized(MessageMissingSubject).WithTextCode(TextCodeMissingSubject)
	}

	return claims, nil
}

func invalidTokenError(err error) *errors.Error {
	textCode := TextCodeTokenMalformed
	if errors.Is(err, jwt.ErrTokenExpired) {
		textCode = TextCodeTokenExpired
	}

	return errors.Wrap(err, errors.CategoryAuth, MessageInvalidToken).
		WithCode(errors.CodeUnauthorized).
		WithTextCode(textCode)
}
