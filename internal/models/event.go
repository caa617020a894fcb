package models

import (
	"time"

	"gorm.io/gorm"
)

// Event is a neighborhood event. Interest and attendance are tracked
// separately: a user can be interested without committing to attend.
type Event struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Category    string    `gorm:"index" json:"category,omitempty"`
	EventDate   time.Time `gorm:"not null;index" json:"eventDate"`

	Location GeoPoint `gorm:"embedded;embeddedPrefix:loc_" json:"location"`

	Interests []EventInterest `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"interests"`
	Attendees []EventAttendee `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"attendees"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &e.ID)
	return nil
}

// InterestedBy reports whether the user already marked interest.
// Interests must be preloaded.
func (e *Event) InterestedBy(userID string) bool {
	for _, i := range e.Interests {
		if i.UserID == userID {
			return true
		}
	}
	return false
}

// AttendedBy reports whether the user already joined the attendee
// list. Attendees must be preloaded.
func (e *Event) AttendedBy(userID string) bool {
	for _, a := range e.Attendees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// EventInterest records a user marking an event as interesting.
type EventInterest struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	EventID string `gorm:"type:uuid;not null;index" json:"eventId"`
	UserID  string `gorm:"type:uuid;not null;index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (i *EventInterest) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &i.ID)
	return nil
}

// EventAttendee records a user committing to attend an event.
type EventAttendee struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	EventID string `gorm:"type:uuid;not null;index" json:"eventId"`
	UserID  string `gorm:"type:uuid;not null;index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (a *EventAttendee) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &a.ID)
	return nil
}
