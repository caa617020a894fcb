package models

import (
	"time"

	"gorm.io/gorm"
)

// UserType distinguishes personal accounts from business accounts.
type UserType string

const (
	UserTypeIndividual UserType = "individual"
	UserTypeBusiness   UserType = "business"
)

// NotificationSettings controls which event classes generate
// notifications for the account.
type NotificationSettings struct {
	Likes    bool `json:"likes"`
	Comments bool `json:"comments"`
	Messages bool `json:"messages"`
	Events   bool `json:"events"`
	Groups   bool `json:"groups"`
}

// DefaultNotificationSettings enables every class.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Likes:    true,
		Comments: true,
		Messages: true,
		Events:   true,
		Groups:   true,
	}
}

// PrivacySettings controls profile visibility.
type PrivacySettings struct {
	ProfileVisible bool `json:"profileVisible"`
	PostsVisible   bool `json:"postsVisible"`
	ShowEmail      bool `json:"showEmail"`
	ShowPhone      bool `json:"showPhone"`
	ShowLocation   bool `json:"showLocation"`
}

// DefaultPrivacySettings shows the profile and posts but hides
// contact details.
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{ProfileVisible: true, PostsVisible: true}
}

// FeedPreferences stores the per-user feed tuning knobs.
type FeedPreferences struct {
	ShowPosts       bool     `json:"showPosts"`
	ShowMarketplace bool     `json:"showMarketplace"`
	ShowEvents      bool     `json:"showEvents"`
	ShowGroups      bool     `json:"showGroups"`
	MutedUsers      []string `json:"mutedUsers,omitempty"`
}

// DefaultFeedPreferences shows every content kind.
func DefaultFeedPreferences() FeedPreferences {
	return FeedPreferences{
		ShowPosts:       true,
		ShowMarketplace: true,
		ShowEvents:      true,
		ShowGroups:      true,
	}
}

// User is an account. Business accounts carry the Business* fields;
// individual accounts leave them empty.
type User struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	Phone      string `json:"phone,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
	Bio        string `json:"bio,omitempty"`

	UserType UserType `gorm:"type:varchar(20);default:'individual';index" json:"userType"`

	// Business profile, only meaningful when UserType is business.
	BusinessName        string `json:"businessName,omitempty"`
	BusinessCategory    string `json:"businessCategory,omitempty"`
	BusinessDescription string `json:"businessDescription,omitempty"`
	BusinessWebsite     string `json:"businessWebsite,omitempty"`
	BusinessHours       string `json:"businessHours,omitempty"`

	Location GeoPoint `gorm:"embedded;embeddedPrefix:loc_" json:"location"`

	Gallery      StringList `gorm:"type:text" json:"gallery"`
	Certificates StringList `gorm:"type:text" json:"certificates"`
	Interests    StringList `gorm:"type:text" json:"interests"`
	BlockedUsers StringList `gorm:"type:text" json:"-"`

	NotificationSettings NotificationSettings `gorm:"type:jsonb;serializer:json" json:"notificationSettings"`
	PrivacySettings      PrivacySettings      `gorm:"type:jsonb;serializer:json" json:"privacySettings"`
	FeedPreferences      FeedPreferences      `gorm:"type:jsonb;serializer:json" json:"feedPreferences"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &u.ID)
	return nil
}

// IsBusiness reports whether the account is a business profile.
func (u *User) IsBusiness() bool {
	return u.UserType == UserTypeBusiness
}

// HasBlocked reports whether the user has blocked the given account.
func (u *User) HasBlocked(userID string) bool {
	for _, id := range u.BlockedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// PublicProfile strips fields the account's privacy settings hide.
func (u *User) PublicProfile() map[string]interface{} {
	profile := map[string]interface{}{
		"id":         u.ID,
		"name":       u.Name,
		"avatar":     u.Avatar,
		"coverImage": u.CoverImage,
		"bio":        u.Bio,
		"userType":   u.UserType,
		"interests":  u.Interests,
		"createdAt":  u.CreatedAt,
	}
	if u.PrivacySettings.ShowEmail {
		profile["email"] = u.Email
	}
	if u.PrivacySettings.ShowPhone {
		profile["phone"] = u.Phone
	}
	if u.PrivacySettings.ShowLocation {
		profile["location"] = u.Location
	}
	if u.IsBusiness() {
		profile["businessName"] = u.BusinessName
		profile["businessCategory"] = u.BusinessCategory
		profile["businessDescription"] = u.BusinessDescription
		profile["businessWebsite"] = u.BusinessWebsite
		profile["businessHours"] = u.BusinessHours
		profile["gallery"] = u.Gallery
		profile["certificates"] = u.Certificates
	}
	return profile
}
