package user

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid registration input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)
