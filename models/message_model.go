package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ConversationID uuid.UUID `gorm:"not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"not null" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`

	Sender User `gorm:"foreignkey:SenderID" json:"sender"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
