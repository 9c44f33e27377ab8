package validators

// Field name constants used to restrict validation to a subset of fields.
// They match the JSON names of the request models.
const (
	// FieldID targets the identifier of an existing user.
	FieldID = "id"

	// FieldUsername targets the username.
	FieldUsername = "username"

	// FieldPassword targets the plaintext password.
	FieldPassword = "password"

	// FieldRoles targets the role list, including each individual role.
	FieldRoles = "roles"
)

// fieldErrors maps a field to the error reported when its rules fail.
var fieldErrors = map[string]error{
	FieldID:       ErrEmptyUserID,
	FieldUsername: ErrEmptyUsername,
	FieldPassword: ErrEmptyPassword,
	FieldRoles:    ErrEmptyRoles,
}
