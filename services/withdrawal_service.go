package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	config "github.com/thihanaung/ptp_education/configs"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/notifications"
	"gorm.io/gorm"
)

// RequestInstructorWithdrawal settles an instructor withdrawal immediately
// against their reconciled balance. There is no pending/approval step:
// either the balance covers the amount and the withdrawal commits, or
// nothing is written. Admin notification and email afterwards are
// best-effort and never undo the committed withdrawal.
func RequestInstructorWithdrawal(instructorID uuid.UUID, amount float64) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var instructor models.User
	err := database.DB.First(&instructor, "id = ? AND role = ?", instructorID, "instructor").Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var withdrawal *models.Withdrawal
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Touching the instructor row takes a row lock, serializing
		// concurrent withdrawals per instructor so two requests cannot both
		// pass the sufficiency check against the same balance.
		err := tx.Model(&models.User{}).
			Where("id = ?", instructorID).
			Update("updated_at", time.Now()).Error
		if err != nil {
			return err
		}

		summary, err := instructorEarnings(tx, instructorID)
		if err != nil {
			return err
		}
		if amount > summary.CurrentBalance {
			return ErrInsufficientBalance
		}

		now := time.Now().UTC()
		status := "completed"
		eScript := fmt.Sprintf(
			"Withdrawal E-Script for %s (%s):\n  - Amount: %.2f MMK\n  - Date & Time: %s",
			instructor.FullName, instructor.Email, amount, now.Format("2006-01-02 15:04:05 UTC"),
		)
		withdrawal = &models.Withdrawal{
			Role:           models.WithdrawalRoleInstructor,
			InstructorID:   &instructorID,
			Amount:         amount,
			Status:         &status,
			RequestedAt:    &now,
			EScriptContent: &eScript,
		}
		return tx.Create(withdrawal).Error
	})
	if err != nil {
		return nil, err
	}

	notification := models.AdminNotification{
		Type:           "withdrawal_notification",
		InstructorID:   instructorID,
		InstructorName: instructor.FullName,
		Amount:         amount,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("🔥 Failed to record admin notification for withdrawal %s: %v", withdrawal.ID, err)
	}

	go notifications.SendEmail(
		instructor.FullName,
		instructor.Email,
		"Withdrawal Completed",
		fmt.Sprintf("<h1>Withdrawal Completed</h1><p>Dear %s,</p><p>Your withdrawal of %.2f MMK has been processed. The admin team has been notified.</p>", instructor.FullName, amount),
	)

	return withdrawal, nil
}

// WithdrawPlatformCommission debits the admin's cached commission balance.
// Sufficiency is enforced by a conditional decrement applied in the
// database, so two concurrent withdrawals can never both succeed against
// the same balance. A missing cache row is rebuilt from reconciliation
// first.
func WithdrawPlatformCommission(amount float64, adminName string) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var withdrawal *models.Withdrawal
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := ensurePlatformBalance(tx); err != nil {
			return err
		}

		result := tx.Model(&models.PlatformBalance{}).
			Where("id = ? AND balance >= ?", models.PlatformBalanceID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		var pb models.PlatformBalance
		if err := tx.First(&pb, "id = ?", models.PlatformBalanceID).Error; err != nil {
			return err
		}

		commission, err := adminCommissionAccrued(tx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		balanceBefore := pb.Balance + amount
		balanceAfter := pb.Balance
		withdrawal = &models.Withdrawal{
			Role:               models.WithdrawalRoleAdmin,
			Amount:             amount,
			WithdrawnBy:        &adminName,
			WithdrawnAt:        &now,
			BalanceBefore:      &balanceBefore,
			BalanceAfter:       &balanceAfter,
			PlatformCommission: &commission,
		}
		return tx.Create(withdrawal).Error
	})
	if err != nil {
		return nil, err
	}

	go notifications.SendEmail(
		adminName,
		configAdminEmail(),
		"Admin Balance Withdrawal",
		fmt.Sprintf("<h1>Admin Balance Withdrawal</h1><p>Amount Withdrawn: %.2f MMK<br>Withdrawn By: %s<br>Balance Before: %.2f MMK<br>Balance After: %.2f MMK</p>", amount, adminName, *withdrawal.BalanceBefore, *withdrawal.BalanceAfter),
	)

	return withdrawal, nil
}

// ClearAdminWithdrawals hard-deletes every admin withdrawal record. This is
// a destructive reset tool; instructor withdrawals are never touched. The
// cached platform balance is left to the audit job to re-sync.
func ClearAdminWithdrawals() (int64, error) {
	result := database.DB.
		Where("role = ?", models.WithdrawalRoleAdmin).
		Delete(&models.Withdrawal{})
	return result.RowsAffected, result.Error
}

func adminCommissionAccrued(db *gorm.DB) (float64, error) {
	gross, err := grossRevenue(db, false)
	if err != nil {
		return 0, err
	}
	return PlatformShare(gross), nil
}

func configAdminEmail() string {
	return config.Config("ADMIN_EMAIL")
}
