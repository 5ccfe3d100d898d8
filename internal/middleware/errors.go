package middleware

import (
	"errors"

	"github.com/bilgisen/spacetraveling/internal/content"
	"github.com/bilgisen/spacetraveling/internal/listing"
	"github.com/gofiber/fiber/v2"
)

// StatusFromError maps an error returned by a handler to its HTTP status.
func StatusFromError(err error) int {
	var fiberErr *fiber.Error
	var fetchErr *content.FetchError
	var malformedErr *content.MalformedEntryError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, content.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, content.ErrInvalidCursor):
		return fiber.StatusBadRequest
	case errors.Is(err, listing.ErrLoadInProgress):
		return fiber.StatusConflict
	case errors.As(err, &fetchErr):
		return fiber.StatusBadGateway
	case errors.As(err, &malformedErr):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// PublicMessage is the text shown to visitors for status.
func PublicMessage(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "This page does not exist."
	case fiber.StatusBadRequest:
		return "The request could not be understood."
	case fiber.StatusConflict:
		return "Posts are already loading."
	case fiber.StatusBadGateway:
		return "Posts could not be loaded. Please try again."
	case fiber.StatusUnauthorized:
		return "Authentication required."
	default:
		return "Something went wrong."
	}
}
