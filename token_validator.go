package auth

// TokenValidator validates tokens and extracts the session without tying
// callers to a specific signing implementation.
type TokenValidator interface {
	Validate(tokenString string) (Session, error)
}

// TokenValidatorFunc adapts a function into a TokenValidator.
type TokenValidatorFunc func(tokenString string) (Session, error)

// Validate satisfies the TokenValidator interface.
func (f TokenValidatorFunc) Validate(tokenString string) (Session, error) {
	if f == nil {
		return nil, Unauthorized(MessageInvalidToken).WithTextCode(TextCodeTokenMalformed)
	}
	return f(tokenString)
}

// NewSecretValidator binds secret to ts so the pair can be handed to
// middleware that only knows about raw token strings.
func NewSecretValidator(ts TokenService, secret string) TokenValidator {
	if ts == nil {
		ts = defaultTokenService
	}
	return TokenValidatorFunc(func(tokenString string) (Session, error) {
		return ts.Session(tokenString, secret)
	})
}

// Validate satisfies the TokenValidator interface using the configured secret.
func (s *Auther) Validate(tokenString string) (Session, error) {
	return s.SessionFromToken(tokenString)
}

var _ TokenValidator = &Auther{}
