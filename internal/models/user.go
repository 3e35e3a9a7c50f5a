package models

import "time"

// User is the authenticated storefront account. Purchases holds the order
// history, most-recent first.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
	Purchases []Order   `json:"purchases"`
}
