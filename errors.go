package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Kind is the failure vocabulary shared by every component of the package.
// The HTTP boundary maps each kind to a status code.
type Kind string

const (
	KindBadRequest   Kind = "bad_request"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
)

const (
	TextCodeBadRequest        = "BAD_REQUEST"
	TextCodeUnauthorized      = "UNAUTHORIZED"
	TextCodeForbidden         = "FORBIDDEN"
	TextCodeNotFound          = "NOT_FOUND"
	TextCodeTokenExpired      = errors.TextCodeTokenExpired
	TextCodeTokenMalformed    = errors.TextCodeTokenMalformed
	TextCodeInvalidIssuer     = "TOKEN_INVALID_ISSUER"
	TextCodeMissingSubject    = "TOKEN_MISSING_SUBJECT"
	TextCodeMissingAuthHeader = "AUTH_HEADER_MISSING"
	TextCodeMalformedHeader   = "AUTH_HEADER_MALFORMED"
	TextCodeInvalidCreds      = errors.TextCodeInvalidCredentials
	TextCodePasswordTooLong   = "PASSWORD_TOO_LONG"
)

// Messages returned to callers. They are part of the public contract of the
// HTTP boundary, keep them stable.
const (
	MessageInvalidToken       = "Invalid token"
	MessageInvalidIssuer      = "Invalid issuer"
	MessageMissingSubject     = "No userId in token"
	MessageMissingAuthHeader  = "No Auth header found"
	MessageMalformedHeader    = "Malformed Auth header"
	MessageInvalidCredentials = "Incorrect email or password"
	MessageForbiddenPlatform  = "Forbidden request in current environment"
	MessageInternal           = "Internal Server Error"
)

var kindCategories = map[Kind]errors.Category{
	KindBadRequest:   errors.CategoryBadInput,
	KindUnauthorized: errors.CategoryAuth,
	KindForbidden:    errors.CategoryAuthz,
	KindNotFound:     errors.CategoryNotFound,
}

var kindCodes = map[Kind]int{
	KindBadRequest:   errors.CodeBadRequest,
	KindUnauthorized: errors.CodeUnauthorized,
	KindForbidden:    errors.CodeForbidden,
	KindNotFound:     errors.CodeNotFound,
}

var kindTextCodes = map[Kind]string{
	KindBadRequest:   TextCodeBadRequest,
	KindUnauthorized: TextCodeUnauthorized,
	KindForbidden:    TextCodeForbidden,
	KindNotFound:     TextCodeNotFound,
}

func newFailure(kind Kind, message string) *errors.Error {
	return errors.New(message, kindCategories[kind]).
		WithCode(kindCodes[kind]).
		WithTextCode(kindTextCodes[kind])
}

// BadRequest reports malformed caller input
func BadRequest(message string) *errors.Error {
	return newFailure(KindBadRequest, message)
}

// Unauthorized reports a bad, expired or forged token, or a bad password
func Unauthorized(message string) *errors.Error {
	return newFailure(KindUnauthorized, message)
}

// Forbidden reports an operation disallowed by environment policy
func Forbidden(message string) *errors.Error {
	return newFailure(KindForbidden, message)
}

// NotFound reports missing credential material
func NotFound(message string) *errors.Error {
	return newFailure(KindNotFound, message)
}

// ErrMismatchedHashAndPassword is returned when a password does not match its hash.
var ErrMismatchedHashAndPassword = errors.New(MessageInvalidCredentials, errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrPasswordTooLong is returned when a password exceeds the bcrypt input limit.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes", errors.CategoryBadInput).
	WithTextCode(TextCodePasswordTooLong).
	WithCode(errors.CodeBadRequest)

// ErrSecretRequired is returned when a token operation is called without a secret.
var ErrSecretRequired = errors.New("token secret is required", errors.CategoryBadInput).
	WithTextCode(TextCodeBadRequest).
	WithCode(errors.CodeBadRequest)

// KindOf classifies err into one of the four failure kinds. Errors outside
// the taxonomy, including wrapped library errors, report false.
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return "", false
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) || richErr == nil {
		return "", false
	}

	for kind, category := range kindCategories {
		if richErr.Category == category {
			return kind, true
		}
	}
	return "", false
}

// IsAuthFailure reports whether err belongs to the failure taxonomy.
func IsAuthFailure(err error) bool {
	_, ok := KindOf(err)
	return ok
}

// IsKind reports whether err is a failure of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// HTTPStatus maps err to the status code the boundary should emit.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return errors.CodeInternal
	}
	return kindCodes[kind]
}

// ErrorMessage returns the message that is safe to expose to clients.
// Unclassified faults never leak their detail.
func ErrorMessage(err error) string {
	if !IsAuthFailure(err) {
		return MessageInternal
	}
	var richErr *errors.Error
	errors.As(err, &richErr)
	return richErr.Message
}

func textCode(err error) string {
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr != nil {
		return richErr.TextCode
	}
	return ""
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if textCode(err) == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	switch textCode(err) {
	case TextCodeTokenMalformed, TextCodeMalformedHeader:
		return true
	}
	return strings.Contains(err.Error(), "token is malformed")
}
