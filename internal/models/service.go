package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is an offering published by a business account.
type Service struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `gorm:"index" json:"category,omitempty"`
	Price       float64 `json:"price,omitempty"`
	PriceUnit   string  `json:"priceUnit,omitempty"`
	Image       string  `json:"image,omitempty"`

	Location GeoPoint `gorm:"embedded;embeddedPrefix:loc_" json:"location"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &s.ID)
	return nil
}
