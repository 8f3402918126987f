package models

import (
	"time"

	"github.com/google/uuid"
)

// FriendAssociation is a directed "added as friend" edge from UserID to FriendID.
// The pair is the primary key, so an edge exists at most once.
type FriendAssociation struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	FriendID  uuid.UUID `json:"friend_id" db:"friend_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
