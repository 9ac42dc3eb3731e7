package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PayoutTypePendingProcessed = "pending_processed"

// Payout credits an instructor's balance for exactly one enrollment. The
// unique index on EnrollmentID is what makes double-processing impossible.
type Payout struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EnrollmentID uuid.UUID `gorm:"not null;uniqueIndex" json:"enrollment_id"`
	InstructorID uuid.UUID `gorm:"not null" json:"instructor_id"`
	CourseID     uuid.UUID `gorm:"not null" json:"course_id"`
	Amount       float64   `gorm:"type:numeric(12,2);not null" json:"amount"`

	// Platform's 30% cut, captured at processing time. Zero for manual
	// payouts, which never credit the platform balance. Kept on the row so
	// reconciliation never has to look outside the ledger: course rows can
	// be deleted later, payout rows cannot.
	CommissionAmount float64 `gorm:"type:numeric(12,2);not null;default:0" json:"commission_amount"`

	PaidAt       time.Time `gorm:"not null" json:"paid_at"`
	PaidBy       string    `gorm:"size:255;not null" json:"paid_by"`
	PayoutType   *string   `gorm:"size:50" json:"payout_type"`
	Note         *string   `gorm:"type:text" json:"note"`

	Instructor User   `gorm:"foreignkey:InstructorID" json:"instructor"`
	Course     Course `gorm:"foreignkey:CourseID" json:"course"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Payout) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
