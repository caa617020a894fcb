package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a neighborhood feed post, pinned to the location the author
// had when posting.
type Post struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title string `json:"title,omitempty"`
	Text  string `gorm:"not null" json:"text"`
	Image string `json:"image,omitempty"`

	// Optional group the post was shared into.
	GroupID string `gorm:"type:uuid;index" json:"groupId,omitempty"`

	// Author snapshot taken at creation time, so the post renders even
	// if the account later changes its display name or avatar.
	AuthorName   string `json:"name"`
	AuthorAvatar string `json:"avatar,omitempty"`

	Location GeoPoint `gorm:"embedded;embeddedPrefix:loc_" json:"location"`

	Likes    []PostLike `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &p.ID)
	return nil
}

// LikedBy reports whether the given user already likes the post. Likes
// must be preloaded.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// PostLike records one user liking one post.
type PostLike struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	PostID string `gorm:"type:uuid;not null;index" json:"postId"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (l *PostLike) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &l.ID)
	return nil
}

// Comment is a flat comment on a post, with the commenter's name and
// avatar snapshotted at write time.
type Comment struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	PostID string `gorm:"type:uuid;not null;index" json:"postId"`
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`

	Text         string `gorm:"not null" json:"text"`
	AuthorName   string `json:"name"`
	AuthorAvatar string `json:"avatar,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &c.ID)
	return nil
}
