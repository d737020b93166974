package auth

import "Inkwell/pkg/response"

var (
	ErrUserAlreadyExists      = response.NewError(409, "user already exists")
	ErrUserNotFound           = response.NewError(404, "user not found")
	ErrInvalidEmailOrPassword = response.NewError(400, "invalid email or password")
	ErrRegisterUser           = response.NewError(500, "failed to register user")
	ErrLoginUser              = response.NewError(500, "failed to log in")
)
