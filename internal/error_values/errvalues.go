package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrValidation       = errors.New("validation failed")

	ErrStatsNotFound = errors.New("study stats don't exist")
	ErrStatsConflict = errors.New("study stats were modified concurrently")
)
