package errprocess

import (
	"errors"
	"fmt"

	"devcollab/pkg/logger"
)

// Sentinel kinds for the HTTP error taxonomy. Use-case code wraps one of
// these; the handler layer maps them to a status code with errors.Is.
var (
	// ErrNotFound referenced entity does not exist (404)
	ErrNotFound = errors.New("not found")
	// ErrForbidden membership or ownership check failed (403)
	ErrForbidden = errors.New("forbidden")
	// ErrBadRequest missing or malformed input (400)
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized missing or invalid credential (401)
	ErrUnauthorized = errors.New("unauthorized")
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// NotFound log and wrap a 404-kind error
func NotFound(msg string) error {
	logger.Log.Error(msg)
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// Forbidden log and wrap a 403-kind error
func Forbidden(msg string) error {
	logger.Log.Error(msg)
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}

// BadRequest log and wrap a 400-kind error
func BadRequest(msg string) error {
	logger.Log.Error(msg)
	return fmt.Errorf("%w: %s", ErrBadRequest, msg)
}

// Unauthorized log and wrap a 401-kind error
func Unauthorized(msg string) error {
	logger.Log.Error(msg)
	return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
}
