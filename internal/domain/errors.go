package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInvalid  = errors.New("session invalid")
	ErrMissingConfig   = errors.New("missing required config")
)
