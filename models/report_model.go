package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Report struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReporterID uuid.UUID  `gorm:"not null" json:"reporter_id"`
	Subject    string     `gorm:"size:255;not null" json:"subject"`
	Details    string     `gorm:"type:text" json:"details"`
	ResolvedAt *time.Time `json:"resolved_at"`

	Reporter User `gorm:"foreignkey:ReporterID" json:"reporter"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
