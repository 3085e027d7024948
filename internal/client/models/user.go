package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials are kept locally only when the user asked to be remembered.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
