package models

import (
	"time"

	"gorm.io/gorm"
)

// FavoriteKind tags what a favorite points at.
type FavoriteKind string

const (
	FavoriteKindPost           FavoriteKind = "post"
	FavoriteKindUser           FavoriteKind = "user"
	FavoriteKindService        FavoriteKind = "service"
	FavoriteKindRecommendation FavoriteKind = "recommendation"
)

// Valid reports whether the kind is one of the recognized tags.
func (k FavoriteKind) Valid() bool {
	switch k {
	case FavoriteKindPost, FavoriteKindUser, FavoriteKindService, FavoriteKindRecommendation:
		return true
	}
	return false
}

// Favorite is a polymorphic bookmark: ItemID is interpreted according
// to Kind at read time. Targets are not foreign keys, so a favorite
// can outlive its target; listing simply skips entries that no longer
// resolve.
type Favorite struct {
	ID     string       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string       `gorm:"type:uuid;not null;index" json:"userId"`
	Kind   FavoriteKind `gorm:"type:varchar(20);not null" json:"kind"`
	ItemID string       `gorm:"type:uuid;not null;index" json:"itemId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &f.ID)
	return nil
}
