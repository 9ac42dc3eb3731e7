package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Conversation struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Participants []*User   `gorm:"many2many:conversation_participants;" json:"participants"`
	Messages     []Message `gorm:"foreignkey:ConversationID" json:"messages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
