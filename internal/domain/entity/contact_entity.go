package entity

import "time"

const (
	ContactNew       = "new"
	ContactResponded = "responded"
)

// ContactMessage is an inbound message from the public contact form.
type ContactMessage struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Company     *string
	Message     string
	Status      string
	RespondedBy *string
	CreatedAt   time.Time
}
