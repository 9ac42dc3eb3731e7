package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is an append-only gross revenue event. Amount is copied from the
// course price at pay time, so later price edits never rewrite history.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"not null" json:"student_id"`
	CourseID  uuid.UUID `gorm:"not null" json:"course_id"`
	Amount    float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method    string    `gorm:"size:50;not null" json:"method"`
	PaidAt    time.Time `gorm:"not null" json:"paid_at"`

	Student User   `gorm:"foreignkey:StudentID" json:"student"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
