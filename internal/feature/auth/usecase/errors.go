// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

// ErrInvalidCredentials is returned when login fails, whether the user is
// unknown or the password is wrong. Callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid username or password")
