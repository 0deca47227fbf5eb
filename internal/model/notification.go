package model

import "time"

// Notification is a recipient-keyed inbox entry. Only the recipient may
// flip the read flag.
type Notification struct {
	ID          string    `json:"id" validate:"required"`
	RecipientID string    `json:"recipient_id" validate:"required"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"` // e.g. "access-request"
	Read        bool      `json:"read"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}
