package chat

import "time"

// Session captures one user's active emotional conversation. A user has at
// most one session at a time; starting a new topic discards the old one.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Participant string    `json:"participant,omitempty"`
	Topic       string    `json:"topic"`
	Turns       []Turn    `json:"turns"`
	CreatedAt   time.Time `json:"createdAt"`
}
