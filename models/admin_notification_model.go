package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminNotification is written best-effort after an instructor withdrawal
// commits so the admin dashboard can surface it. Losing one never rolls
// back the withdrawal it describes.
type AdminNotification struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type           string    `gorm:"size:50;not null" json:"type"`
	InstructorID   uuid.UUID `gorm:"not null" json:"instructor_id"`
	InstructorName string    `gorm:"size:255" json:"instructor_name"`
	Amount         float64   `gorm:"type:numeric(12,2)" json:"amount"`
	CreatedAt      time.Time `json:"created_at"`
}

func (n *AdminNotification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
