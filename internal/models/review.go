package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a rating a user leaves on a business account.
type Review struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID string `gorm:"type:uuid;not null;index" json:"businessId"`
	Business   *User  `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	UserID     string `gorm:"type:uuid;not null;index" json:"userId"`
	User       *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Rating int    `gorm:"not null" json:"rating"`
	Text   string `json:"text,omitempty"`

	// Reviewer snapshot at write time.
	AuthorName   string `json:"name"`
	AuthorAvatar string `json:"avatar,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &r.ID)
	return nil
}
