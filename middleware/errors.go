package middleware

import "errors"

var (
	errTokenMissing = errors.New("Not authorized, no token")
	errTokenInvalid = errors.New("Not authorized, token failed")
	errUserGone     = errors.New("User not found")
)
