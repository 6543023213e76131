package auth

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AuthScheme is the only scheme accepted in the Authorization header.
const AuthScheme = "Bearer"

// GetBearerToken pulls the bearer token out of the request headers.
func GetBearerToken(headers http.Header) (string, error) {
	return BearerFromHeader(headers.Get(router.HeaderAuthorization))
}

// BearerFromHeader parses an Authorization header value of the exact form
// "Bearer <token>". The scheme is matched case-insensitively.
func BearerFromHeader(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", NotFound(MessageMissingAuthHeader).WithTextCode(TextCodeMissingAuthHeader)
	}

	parts := strings.Split(value, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthScheme) || parts[1] == "" {
		return "", BadRequest(MessageMalformedHeader).WithTextCode(TextCodeMalformedHeader)
	}

	return parts[1], nil
}

// NewErrorHandler returns a router error handler that renders failures as
// {"error": message} with the status of their kind. Unclassified errors
// render a generic 500 and are logged.
func NewErrorHandler(logger Logger) router.ErrorHandler {
	if logger == nil {
		logger = defaultLogger()
	}

	return func(c router.Context, err error) error {
		status := HTTPStatus(err)

		if status == errors.CodeInternal {
			var richErr *errors.Error
			details := ""
			if errors.As(err, &richErr) {
				details = print.MaybeSecureJSON(richErr.Metadata)
			}
			logger.Error("Unclassified error in auth boundary", "error", err, "details", details)
		} else {
			logger.Debug("Auth failure", "status", status, "text_code", textCode(err))
		}

		return c.JSON(status, map[string]string{
			"error": ErrorMessage(err),
		})
	}
}
