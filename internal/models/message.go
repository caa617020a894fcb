package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is a two-party message thread. Exactly one conversation
// exists per unordered participant pair; lookups check both column
// orders.
type Conversation struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	ParticipantA string `gorm:"type:uuid;not null;index" json:"participantA"`
	ParticipantB string `gorm:"type:uuid;not null;index" json:"participantB"`

	LastMessageID string   `gorm:"type:uuid" json:"-"`
	LastMessage   *Message `gorm:"foreignKey:LastMessageID" json:"lastMessage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &c.ID)
	return nil
}

// HasParticipant reports whether the user is one of the two parties.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// OtherParticipant returns the counterpart of the given user.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

// Message is a single message inside a conversation.
type Message struct {
	ID             string `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID string `gorm:"type:uuid;not null;index" json:"conversationId"`
	SenderID       string `gorm:"type:uuid;not null;index" json:"senderId"`
	Sender         *User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	Text string `gorm:"not null" json:"text"`
	Read bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	newUUID(tx, &m.ID)
	return nil
}
