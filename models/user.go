package models

import "time"

// User represents a stored account record.
// PasswordHash is a bcrypt hash and must never leave trusted boundaries,
// so it is excluded from JSON entirely. Use [User.View] for output.
type User struct {
	// ID is the opaque identifier assigned by the store at creation.
	ID string `json:"id"`

	// Username is unique across all existing users.
	Username string `json:"username"`

	// PasswordHash is the salted one-way hash of the user's password.
	PasswordHash string `json:"-"`

	// Roles is the ordered, non-empty set of role identifiers.
	Roles []string `json:"roles"`

	// IsActive reports whether the account is enabled.
	IsActive bool `json:"isActive"`

	// CreatedAt is the timestamp when the user record was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last successful save.
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserView is the public projection of a [User]: every field except the
// password hash.
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the public projection of u.
// The roles slice is copied so callers cannot mutate the source record.
func (u User) View() UserView {
	roles := make([]string, len(u.Roles))
	copy(roles, u.Roles)

	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Roles:     roles,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// DeletionReceipt describes a user record that has been removed from the store.
type DeletionReceipt struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// String returns the confirmation reported to the caller after a delete.
func (r DeletionReceipt) String() string {
	return "Username " + r.Username + " with ID " + r.ID + " deleted"
}
