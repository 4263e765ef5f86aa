package entities

import "time"

// Event types pushed to connected clients.
const (
	EventPointsAwarded = "points_awarded"
	EventPetChanged    = "pet_changed"
)

// Event is a push notification for one user.
type Event struct {
	Type      string      `json:"type"`
	UserID    int64       `json:"userId"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
