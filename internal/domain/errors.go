package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidField    = errors.New("invalid profile field")
	ErrSelfReferral    = errors.New("self referral is not allowed")
	ErrLockTimeout     = errors.New("lock acquisition timed out")

	// ErrStoreDegraded основное хранилище не ответило, ответ дало запасное
	ErrStoreDegraded = errors.New("profile store degraded")
)

func invalidField(field ProfileField, value any) error {
	return fmt.Errorf("%w: %s=%v (%T)", ErrInvalidField, field, value, value)
}

// SkipError ошибка, которую вызывающий уже залогировал и повтор которой ничего не даст
// (битое сообщение очереди и т.п.)
type SkipError struct {
	Err error
}

func (e *SkipError) Error() string { return e.Err.Error() }
func (e *SkipError) Unwrap() error { return e.Err }

func Skip(err error) error {
	if err == nil {
		return nil
	}
	return &SkipError{Err: err}
}

func IsSkip(err error) bool {
	var skip *SkipError
	return errors.As(err, &skip)
}
