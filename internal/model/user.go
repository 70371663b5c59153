package model

import "time"

// User mirrors a row of the `users` table. PasswordHash is the bcrypt digest
// of the account password; the plaintext is never stored and the hash is
// never serialized into an API response (note the "-" json tag).
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
