package models

// CreateUserRequest carries the fields accepted by the create operation.
type CreateUserRequest struct {
	// Username of the new account. Required.
	Username string `json:"username" validate:"required,notblank"`

	// Password in plaintext. Required; it is hashed before storage.
	Password string `json:"password" validate:"required"`

	// Roles assigned to the new account. At least one non-blank role is required.
	Roles []string `json:"roles" validate:"required,min=1,dive,required,notblank"`
}

// UpdateUserRequest carries the fields accepted by the update operation.
// Username, Roles and IsActive replace the stored values unconditionally;
// Password replaces the stored hash only when non-empty.
type UpdateUserRequest struct {
	// ID of the record to update. Required.
	ID string `json:"id" validate:"required"`

	// Username to store. Required.
	Username string `json:"username" validate:"required,notblank"`

	// Roles to store. At least one non-blank role is required.
	Roles []string `json:"roles" validate:"required,min=1,dive,required,notblank"`

	// IsActive to store. An omitted value decodes as false.
	IsActive bool `json:"isActive"`

	// Password is optional. When empty the stored hash is left untouched.
	Password string `json:"password,omitempty"`
}

// DeleteUserRequest identifies the record to delete.
type DeleteUserRequest struct {
	// ID of the record to delete. Required.
	ID string `json:"id" validate:"required"`
}
