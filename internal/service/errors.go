package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrSessionMissing     = errors.New("session id is required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrArticleNotFound    = errors.New("article not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrMythNotFound       = errors.New("myth not found")
	ErrPageNotFound       = errors.New("page not found")
	ErrContentNotFound    = errors.New("content not found")
	ErrUnknownContentType = errors.New("unknown content type")
	ErrValidation         = errors.New("validation failed")
)

// isDuplicateKey reports whether err is a uniqueness-constraint violation.
// The SQLite driver does not always translate to gorm.ErrDuplicatedKey, so
// the raw message is checked as well.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// validationError wraps a user-facing message so handlers can map it to a
// 400 with errors.Is(err, ErrValidation).
func validationError(message string) error {
	return &fieldError{message: message}
}

type fieldError struct {
	message string
}

func (e *fieldError) Error() string {
	return e.message
}

func (e *fieldError) Is(target error) bool {
	return target == ErrValidation
}
