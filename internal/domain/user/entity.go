package user

import "time"

// User represents a registered account in the system.
// PasswordHash is opaque to every layer except pkg/security and is never
// serialized into API responses.
type User struct {
	ID           string    // ID is the unique identifier assigned at creation
	Email        string    // Email is the unique email address of the user
	PasswordHash string    // PasswordHash is the bcrypt hash of the password
	Name         string    // Name is the optional display name
	Bio          string    // Bio is the optional profile text shown on the profile page
	CreatedAt    time.Time // CreatedAt is set once when the record is created
}
