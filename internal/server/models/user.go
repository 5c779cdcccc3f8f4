// Package models holds the plain data structures persisted by the server.
// Entities carry no persistence logic; repositories own the CRUD mechanics.
package models

// User is a registered account. PasswordHash is a bcrypt hash; the raw
// password never leaves the registration/login request.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
}
