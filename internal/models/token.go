package models

import (
	"github.com/google/uuid"
)

// TokenDB represents a bearer token row owned by a user
type TokenDB struct {
	ID       uuid.UUID `json:"id" db:"id"`               // Primary key, preserved across refreshes
	UserID   uuid.UUID `json:"user_id" db:"user_id"`     // Owner, cascades on user delete
	Token    string    `json:"token" db:"token"`         // Encoded JWT
	IsActive bool      `json:"is_active" db:"is_active"` // False after logout
	Timestamps
}
