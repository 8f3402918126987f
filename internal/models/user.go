package models

import (
	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	ID               uuid.UUID `json:"id" db:"id"`                               // Primary key, generated at creation
	DisplayName      string    `json:"display_name" db:"display_name"`           // Unique display name
	Email            string    `json:"email" db:"email"`                         // Unique email
	Country          *string   `json:"country,omitempty" db:"country"`           // Optional ISO country code
	Avatar           *string   `json:"avatar,omitempty" db:"avatar"`             // Optional avatar URL
	SpotifyID        *string   `json:"spotify_id,omitempty" db:"spotify_id"`     // Optional unique Spotify user id
	IsOnline         bool      `json:"is_online" db:"is_online"`                 // Online flag
	CurrentlyPlaying *string   `json:"currently_playing" db:"currently_playing"` // Free text, e.g. "Artist - Track"
	PasswordHash     string    `json:"-" db:"password_hash"`                     // bcrypt hash, never serialized
	Timestamps
}

// UserCreate represents the JSON body for user creation and registration
// swagger:model UserCreate
type UserCreate struct {
	// Display name
	// required: true
	// example: Alice1
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`

	// Email
	// required: true
	// example: alice@x.com
	Email string `json:"email" validate:"required,email,email_domain"`

	// Password
	// required: true
	// example: Passw0rd
	Password string `json:"password" validate:"required,min=8,max=50"`

	// Two letter country code
	// example: FR
	Country *string `json:"country,omitempty" validate:"omitempty,max=2"`

	// Avatar URL
	// example: https://i.scdn.co/image/ab6775700000ee85
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,url,max=255"`

	// Spotify user id
	// example: 31xyzabc
	SpotifyID *string `json:"spotify_id,omitempty" validate:"omitempty,min=5,max=255"`

	IsOnline bool `json:"is_online"`

	CurrentlyPlaying *string `json:"currently_playing,omitempty" validate:"omitempty,max=255"`
}

// UserUpdate represents a partial update. A nil field is left untouched.
// swagger:model UserUpdate
type UserUpdate struct {
	DisplayName      *string `json:"display_name,omitempty" validate:"omitempty,min=2,max=50"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email,email_domain"`
	Password         *string `json:"password,omitempty" validate:"omitempty,min=8,max=50"`
	Country          *string `json:"country,omitempty" validate:"omitempty,max=2"`
	Avatar           *string `json:"avatar,omitempty" validate:"omitempty,url,max=255"`
	SpotifyID        *string `json:"spotify_id,omitempty" validate:"omitempty,min=5,max=255"`
	IsOnline         *bool   `json:"is_online,omitempty"`
	CurrentlyPlaying *string `json:"currently_playing,omitempty" validate:"omitempty,max=255"`
}

// IsEmpty reports whether no field is set.
func (u UserUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Email == nil && u.Password == nil &&
		u.Country == nil && u.Avatar == nil && u.SpotifyID == nil &&
		u.IsOnline == nil && u.CurrentlyPlaying == nil
}

// UserOut is the public representation of a user, without the password hash
// swagger:model UserOut
type UserOut struct {
	ID               uuid.UUID `json:"id"`
	DisplayName      string    `json:"display_name"`
	Email            string    `json:"email"`
	Country          *string   `json:"country,omitempty"`
	Avatar           *string   `json:"avatar,omitempty"`
	SpotifyID        *string   `json:"spotify_id,omitempty"`
	IsOnline         bool      `json:"is_online"`
	CurrentlyPlaying *string   `json:"currently_playing"`
	FriendsCount     *int      `json:"friends_count,omitempty"`
	Timestamps
}

// NewUserOut builds the sanitized view of u.
func NewUserOut(u *UserDB) *UserOut {
	return &UserOut{
		ID:               u.ID,
		DisplayName:      u.DisplayName,
		Email:            u.Email,
		Country:          u.Country,
		Avatar:           u.Avatar,
		SpotifyID:        u.SpotifyID,
		IsOnline:         u.IsOnline,
		CurrentlyPlaying: u.CurrentlyPlaying,
		Timestamps:       u.Timestamps,
	}
}

// WithFriendsCount sets the number of outgoing friend edges.
func (u *UserOut) WithFriendsCount(n int) *UserOut {
	u.FriendsCount = &n
	return u
}

// PaginatedUsers represents one page of users
// swagger:model PaginatedUsers
type PaginatedUsers struct {
	Total   int       `json:"total"`
	Users   []UserOut `json:"users"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
	Pages   int       `json:"pages"`
}
