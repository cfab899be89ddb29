// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

// UpdateAccountReq represents the request body for updating account details.
// Absent fields leave the stored values unchanged; username and password
// cannot be changed after signup.
type UpdateAccountReq struct {
	Email *string `json:"email" binding:"omitempty,email"`
}
