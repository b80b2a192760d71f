package models

import "time"

type Role string

// User role values as stored in the users table
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a loyalty program member
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never serialize password hash
	Points       int    `json:"points"`
	Role         Role   `json:"role"`
}

// HistoryEntry represents a single action in a user's point history
type HistoryEntry struct {
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListItem is the admin-facing user summary
type UserListItem struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
	Role     Role   `json:"role"`
}

// ProfileResponse is the payload for GET /api/me
type ProfileResponse struct {
	Username string         `json:"username"`
	Points   int            `json:"points"`
	Role     Role           `json:"role"`
	History  []HistoryEntry `json:"history"`
}
