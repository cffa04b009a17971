package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidUser        = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCooldownActive     = errors.New("guess cooldown is active")
	ErrOutOfQuotes        = errors.New("no quotes left to guess")
	ErrQuoteSolved        = errors.New("quote already solved by this user")
	ErrInvalidExecContext = errors.New("invalid executor context")
)
