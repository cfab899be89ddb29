// Package api defines the shared response shapes of the HTTP surface and the
// centralized mapping from domain errors to HTTP statuses.
package api

// ErrorResponse is the body of every failed request: {"message": "..."}.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is the body of simple success responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned by a successful /login.
type LoginResponse struct {
	Username string `json:"username"`
	JWT      string `json:"jwt"`
}

// IdentityResponse carries the username resolved from a bearer token.
type IdentityResponse struct {
	Username string `json:"username"`
}
