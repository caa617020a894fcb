package models

import (
	"time"

	"gorm.io/gorm"
)

// Group is a neighborhood interest group. The creator is added as a
// member at creation time.
type Group struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Category    string `gorm:"index" json:"category,omitempty"`

	Location GeoPoint `gorm:"embedded;embeddedPrefix:loc_" json:"location"`

	Members []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"members"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &g.ID)
	return nil
}

// HasMember reports whether the user already belongs to the group.
// Members must be preloaded.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// GroupMember records one user's membership in one group.
type GroupMember struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID string `gorm:"type:uuid;not null;index" json:"groupId"`
	UserID  string `gorm:"type:uuid;not null;index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (m *GroupMember) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &m.ID)
	return nil
}
