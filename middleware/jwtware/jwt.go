package jwtware

import (
	"context"

	"github.com/chirpy-social/auth"
	"github.com/goliatone/go-router"
)

// ValidationListener is invoked after a token has been validated and before
// the session is stored for downstream handlers.
type ValidationListener func(ctx router.Context, session auth.Session) error

type Config struct {
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	ContextKey     string
	// TokenValidator is required for token validation
	TokenValidator auth.TokenValidator

	// ContextEnricher is an optional function to propagate the session to the
	// standard Go context after successful validation.
	ContextEnricher func(c context.Context, session auth.Session) context.Context

	// ValidationListeners are invoked after token validation succeeds.
	ValidationListeners []ValidationListener
}

// New returns a middleware that requires a valid "Authorization: Bearer"
// header on every request it guards.
func New(config ...Config) router.MiddlewareFunc {
	cfg := GetDefaultConfig(config...)
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return hf(ctx)
			}

			raw, err := auth.BearerFromHeader(ctx.Header(router.HeaderAuthorization))
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			session, err := cfg.TokenValidator.Validate(raw)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			if err := cfg.runValidationListeners(ctx, session); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, session)

			if cfg.ContextEnricher != nil {
				ctx.SetContext(cfg.ContextEnricher(ctx.Context(), session))
			}

			if cfg.SuccessHandler != nil {
				return cfg.SuccessHandler(ctx)
			}
			return hf(ctx)
		}
	}
}

// NewWithSecret guards routes with tokens signed by secret.
func NewWithSecret(secret string, config ...Config) router.MiddlewareFunc {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}
	cfg.TokenValidator = auth.NewSecretValidator(auth.NewTokenService(), secret)
	return New(cfg)
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = auth.NewErrorHandler(nil)
	}

	if cfg.TokenValidator == nil {
		panic("AUTH: JWT middleware configuration: TokenValidator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = auth.DefaultContextKey
	}

	return cfg
}

func (cfg *Config) runValidationListeners(ctx router.Context, session auth.Session) error {
	for _, listener := range cfg.ValidationListeners {
		if listener == nil {
			continue
		}
		if err := listener(ctx, session); err != nil {
			return err
		}
	}
	return nil
}

// ContextEnricher stores the session with auth.WithSessionContext.
func ContextEnricher(c context.Context, session auth.Session) context.Context {
	return auth.WithSessionContext(c, session)
}
