package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentPending  = "Pending"
	EnrollmentApproved = "Approved"

	PayoutStatusPaid = "Paid"
)

type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"student_id"`
	CourseID  uuid.UUID `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"course_id"`

	EnrolledAt time.Time `gorm:"not null" json:"enrolled_at"`

	// Only Approved enrollments count toward payable totals. There is no
	// rejected state; rejection happens at the course level.
	ApprovalStatus string `gorm:"size:20;not null;default:'Pending'" json:"approval_status"`

	// Nil until an admin pays out this enrollment's instructor share.
	PayoutStatus *string    `gorm:"size:20" json:"payout_status"`
	ProcessedAt  *time.Time `json:"processed_at"`
	ProcessedBy  *string    `gorm:"size:255" json:"processed_by"`

	Student User   `gorm:"foreignkey:StudentID" json:"student"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
