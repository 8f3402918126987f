package models

// Event types published to the event stream.
const (
	EventUserCreated   = "user.created"
	EventUserUpdated   = "user.updated"
	EventUserDeleted   = "user.deleted"
	EventFriendAdded   = "friend.added"
	EventFriendRemoved = "friend.removed"
	EventUserLoggedIn  = "user.logged_in"
	EventUserLoggedOut = "user.logged_out"
)

// Event represents a domain event, including the acting user, an optional subject and a timestamp.
type Event struct {
	EventID   string `json:"event_id"`             // EventID is a unique identifier for the event.
	Type      string `json:"type"`                 // Type is one of the Event* constants.
	UserID    string `json:"user_id"`              // UserID is the user the event is about.
	SubjectID string `json:"subject_id,omitempty"` // SubjectID is the other user involved, e.g. the friend.
	Timestamp int64  `json:"timestamp"`            // Timestamp is the Unix timestamp (in seconds) of the event.
}
