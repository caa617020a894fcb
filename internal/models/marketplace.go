package models

import (
	"time"

	"gorm.io/gorm"
)

// MarketplaceItem is a for-sale listing in the neighborhood
// marketplace.
type MarketplaceItem struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	Price       float64    `gorm:"not null" json:"price"`
	Category    string     `gorm:"index" json:"category,omitempty"`
	Condition   string     `json:"condition,omitempty"`
	Images      StringList `gorm:"type:text" json:"images"`
	Sold        bool       `gorm:"default:false" json:"sold"`

	Location GeoPoint `gorm:"embedded;embeddedPrefix:loc_" json:"location"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *MarketplaceItem) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &m.ID)
	return nil
}
