package user

import "errors"

var (
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid user data")
	ErrNotSeller          = errors.New("account is not a business")
)
