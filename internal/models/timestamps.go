package models

import "time"

// Timestamps holds the creation and last update time of a row.
// It is embedded in every entity instead of being inherited from a base model.
type Timestamps struct {
	CreatedAt time.Time  `json:"created_at" db:"created_at"`           // Creation timestamp
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"` // Last update timestamp, nil until the first update
}
