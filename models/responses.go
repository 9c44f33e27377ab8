package models

// MessageResponse is the body of every error response and of operations
// whose only result is a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateUserResponse is returned after a user was created.
type CreateUserResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UpdateUserResponse is returned after a user was updated.
type UpdateUserResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}
