package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ Session = &SessionObject{}

// SessionObject is the verified claim set of a token
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// SessionFromClaims builds a session from claims that were already verified.
func SessionFromClaims(claims *jwt.RegisteredClaims) *SessionObject {
	if claims == nil {
		return &SessionObject{}
	}

	session := &SessionObject{
		UserID: claims.Subject,
		Issuer: claims.Issuer,
	}
	if claims.IssuedAt != nil {
		iat := claims.IssuedAt.Time
		session.IssuedAt = &iat
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		session.ExpirationDate = &exp
	}
	return session
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetExpiresAt() *time.Time {
	return s.ExpirationDate
}

// ExpiresIn returns the remaining lifetime relative to now.
func (s *SessionObject) ExpiresIn(now time.Time) time.Duration {
	if s.ExpirationDate == nil {
		return 0
	}
	return s.ExpirationDate.Sub(now)
}

func (s SessionObject) String() string {
	var iat, exp string
	if s.IssuedAt != nil {
		iat = s.IssuedAt.UTC().Format(time.RFC3339)
	}
	if s.ExpirationDate != nil {
		exp = s.ExpirationDate.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("user=%s iss=%s iat=%s exp=%s", s.UserID, s.Issuer, iat, exp)
}
