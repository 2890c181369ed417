package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant roles on event_participants.
const (
	RoleParticipant = "participant"
	RoleOrganizer   = "organizer"
)

type Event struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	EventDate *time.Time `json:"event_date,omitempty"`
	CreatedBy string     `json:"created_by"`
	CreatorID uuid.UUID  `json:"creator_id"`
	IsDeleted bool       `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

// EventWithJoined is an event decorated with the viewing user's
// membership state, as the events board renders it.
type EventWithJoined struct {
	Event
	Joined       bool `json:"joined"`
	Participants int  `json:"participants"`
}

type Participant struct {
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserEmail string    `json:"user_email"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}
