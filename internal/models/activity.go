package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity is a work log entry a business keeps for jobs it performed
// in the neighborhood. The client reference is optional: a business
// can log work for people who are not on the platform.
type Activity struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID string `gorm:"type:uuid;not null;index" json:"businessId"`
	Business   *User  `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	ClientID   string `gorm:"type:uuid;index" json:"clientId,omitempty"`
	Client     *User  `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Description    string     `gorm:"not null" json:"description"`
	ServiceType    string     `gorm:"index" json:"serviceType,omitempty"`
	DateCompleted  *time.Time `json:"dateCompleted,omitempty"`
	ClientFeedback string     `json:"clientFeedback,omitempty"`

	// Geocoded from the job address, best effort.
	Location GeoPoint `gorm:"embedded;embeddedPrefix:loc_" json:"location"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &a.ID)
	return nil
}
