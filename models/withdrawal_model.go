package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WithdrawalRoleInstructor = "instructor"
	WithdrawalRoleAdmin      = "admin"
)

// Withdrawal debits an available balance. Instructor rows settle
// immediately against the payout ledger; admin rows debit the cached
// platform commission and carry a balance snapshot for auditing.
type Withdrawal struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Role   string    `gorm:"size:20;not null;index" json:"role"`
	Amount float64   `gorm:"type:numeric(12,2);not null" json:"amount"`

	// Instructor withdrawals.
	InstructorID  *uuid.UUID `gorm:"index" json:"instructor_id,omitempty"`
	Status        *string    `gorm:"size:20" json:"status,omitempty"`
	RequestedAt   *time.Time `json:"requested_at,omitempty"`
	EScriptContent *string   `gorm:"type:text" json:"-"`

	// Admin withdrawals.
	WithdrawnBy        *string    `gorm:"size:255" json:"withdrawn_by,omitempty"`
	WithdrawnAt        *time.Time `json:"withdrawn_at,omitempty"`
	BalanceBefore      *float64   `gorm:"type:numeric(12,2)" json:"balance_before,omitempty"`
	BalanceAfter       *float64   `gorm:"type:numeric(12,2)" json:"balance_after,omitempty"`
	PlatformCommission *float64   `gorm:"type:numeric(12,2)" json:"platform_commission,omitempty"`

	Instructor *User `gorm:"foreignkey:InstructorID" json:"instructor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (w *Withdrawal) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
