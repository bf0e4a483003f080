package model

import "time"

// Role names stored in users.role. Any other value submitted by a client
// is coerced to RoleUser before it reaches the database.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// NormalizeRole maps arbitrary input onto a valid role. Only the exact
// string "ADMIN" grants the admin role; everything else becomes USER.
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User mirrors a row of the `users` table. The struct carries the bcrypt
// password hash, so handlers must map it to a response type that omits
// the hash before returning it to clients.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address (lower-cased before insert).
//  PasswordHash – bcrypt hashed password, never serialized to clients.
//  Role         – USER or ADMIN.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}
