package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// AuthConfig defines the config for the auth middleware
type AuthConfig struct {
	// Skip defines a function to skip middleware.
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Validator is a function to validate the token.
	// Required.
	Validator func(token string) (bool, error)

	// ErrorHandler defines a function which is executed for an invalid token.
	// Optional. Default: 401 Invalid or missing token
	ErrorHandler fiber.ErrorHandler

	// Header is the header key where to get the token from.
	// Optional. Default: "Authorization"
	Header string
}

// ConfigDefault is the default config
var ConfigDefault = AuthConfig{
	Next: nil,
	ErrorHandler: func(c *fiber.Ctx, err error) error {
		logger.Get().Warn().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Err(err).
			Msg("Authentication failed")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing token",
		})
	},
	Header: fiber.HeaderAuthorization,
}

// NewAuth creates a token-checking middleware handler
func NewAuth(config AuthConfig) fiber.Handler {
	cfg := config
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = ConfigDefault.ErrorHandler
	}
	if cfg.Header == "" {
		cfg.Header = ConfigDefault.Header
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		header := c.Get(cfg.Header)
		if header == "" {
			return cfg.ErrorHandler(c, errors.New("missing token"))
		}

		token := strings.TrimPrefix(header, "Bearer ")

		valid, err := cfg.Validator(token)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}
		if !valid {
			return cfg.ErrorHandler(c, errors.New("invalid token"))
		}

		return c.Next()
	}
}

// StaticToken protects a route with a fixed bearer token. An empty token
// leaves the route open.
func StaticToken(token string) fiber.Handler {
	return NewAuth(AuthConfig{
		Next: func(*fiber.Ctx) bool { return token == "" },
		Validator: func(got string) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1, nil
		},
	})
}
