package domain

import "strings"

// User is an account known to the backend.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Credentials holds what the login/register form collects. It is never stored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return NewValidationError("Missing data")
	}
	return nil
}
