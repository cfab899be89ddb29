// Package domain defines domain-level errors for the users feature.
package domain

import "errors"

// Domain errors for user and food-log operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists indicates that a user with the given username already exists.
	// This is returned during signup when attempting to create a duplicate user.
	ErrUsernameAlreadyExists = errors.New("user with this username already exists")

	// ErrInvalidDate indicates that a date path parameter could not be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateNotFound indicates that the user has no daily log for the given date key.
	ErrDateNotFound = errors.New("no meal log for date")

	// ErrEntryNotFound indicates that a daily log has no meal entry with the given ID.
	ErrEntryNotFound = errors.New("food item not found")
)
