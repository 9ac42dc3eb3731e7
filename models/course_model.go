package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InstructorID uuid.UUID `gorm:"not null" json:"instructor_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Category     string    `gorm:"size:100" json:"category"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        float64   `gorm:"type:numeric(12,2);not null" json:"price"`

	// "pending" until an admin approves it. Rejection deletes the course
	// outright, so there is no "rejected" row state.
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	IsAvailable bool       `gorm:"default:true" json:"is_available"`
	ApprovedAt  *time.Time `json:"approved_at"`

	Instructor User `gorm:"foreignkey:InstructorID" json:"instructor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
