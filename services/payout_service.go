package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/notifications"
	"gorm.io/gorm"
)

// payoutContext is everything both payout paths need to look up before
// writing anything.
type payoutContext struct {
	enrollment models.Enrollment
	course     models.Course
	instructor models.User
}

func loadPayoutContext(enrollmentID uuid.UUID) (*payoutContext, error) {
	var ctx payoutContext

	err := database.DB.First(&ctx.enrollment, "id = ?", enrollmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = database.DB.First(&ctx.course, "id = ?", ctx.enrollment.CourseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = database.DB.First(&ctx.instructor, "id = ?", ctx.course.InstructorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ctx.enrollment.PayoutStatus != nil && *ctx.enrollment.PayoutStatus == models.PayoutStatusPaid {
		return nil, ErrAlreadyPaid
	}

	return &ctx, nil
}

// MarkPayoutPaid records that the admin settled an enrollment's instructor
// share outside the platform balance (manual payout). Works regardless of
// approval status, but never twice for the same enrollment: the unique
// index on payouts.enrollment_id backstops the status check.
func MarkPayoutPaid(enrollmentID uuid.UUID, adminName string) (*models.Payout, error) {
	ctx, err := loadPayoutContext(enrollmentID)
	if err != nil {
		return nil, err
	}

	share := InstructorShare(ctx.course.Price)
	payout := models.Payout{
		EnrollmentID: ctx.enrollment.ID,
		InstructorID: ctx.course.InstructorID,
		CourseID:     ctx.enrollment.CourseID,
		Amount:       share,
		PaidAt:       time.Now().UTC(),
		PaidBy:       adminName,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payout).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyPaid
			}
			return err
		}
		return tx.Model(&models.Enrollment{}).
			Where("id = ?", ctx.enrollment.ID).
			Update("payout_status", models.PayoutStatusPaid).Error
	})
	if err != nil {
		return nil, err
	}

	go notifications.SendEmail(
		ctx.instructor.FullName,
		ctx.instructor.Email,
		fmt.Sprintf("Payout Processed: %s", ctx.course.Title),
		fmt.Sprintf("<h1>Payout Processed</h1><p>Dear %s,</p><p>You have been paid %.0f MMK for an enrollment in \"%s\".</p><p>Regards,<br>Admin Team</p>", ctx.instructor.FullName, share, ctx.course.Title),
	)

	return &payout, nil
}

// ProcessPendingPayout settles a still-Pending enrollment through the
// platform: the instructor share lands on their withdrawable balance and
// the 30% commission is credited to the cached platform balance in the
// same transaction. Exactly-once per enrollment, same guard as above.
func ProcessPendingPayout(enrollmentID uuid.UUID, adminName string) (*models.Payout, error) {
	ctx, err := loadPayoutContext(enrollmentID)
	if err != nil {
		return nil, err
	}

	if ctx.enrollment.ApprovalStatus != models.EnrollmentPending {
		return nil, ErrNotPending
	}

	instructorShare := InstructorShare(ctx.course.Price)
	adminShare := PlatformShare(ctx.course.Price)

	now := time.Now().UTC()
	payoutType := models.PayoutTypePendingProcessed
	note := fmt.Sprintf("Processed from pending by admin: %s", adminName)
	payout := models.Payout{
		EnrollmentID:     ctx.enrollment.ID,
		InstructorID:     ctx.course.InstructorID,
		CourseID:         ctx.enrollment.CourseID,
		Amount:           instructorShare,
		CommissionAmount: adminShare,
		PaidAt:           now,
		PaidBy:           adminName,
		PayoutType:       &payoutType,
		Note:             &note,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Seed the cache before inserting the payout: reconciliation inside
		// this transaction must not see the payout being created, or the
		// credit below would count this enrollment's share twice.
		if _, err := ensurePlatformBalance(tx); err != nil {
			return err
		}

		if err := tx.Create(&payout).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyPaid
			}
			return err
		}

		err := tx.Model(&models.PlatformBalance{}).
			Where("id = ?", models.PlatformBalanceID).
			Update("balance", gorm.Expr("balance + ?", adminShare)).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Enrollment{}).
			Where("id = ?", ctx.enrollment.ID).
			Updates(map[string]interface{}{
				"payout_status": models.PayoutStatusPaid,
				"processed_at":  now,
				"processed_by":  adminName,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	go notifications.SendEmail(
		ctx.instructor.FullName,
		ctx.instructor.Email,
		fmt.Sprintf("Balance Added: %s", ctx.course.Title),
		fmt.Sprintf("<h1>Balance Added</h1><p>Dear %s,</p><p>%.0f MMK has been added to your available balance for an enrollment in \"%s\". You can withdraw it from your instructor dashboard.</p><p>Amount Added: %.0f MMK (70%% instructor share)<br>Admin Commission: %.0f MMK (30%% platform fee)</p><p>Best regards,<br>Admin Team</p>", ctx.instructor.FullName, instructorShare, ctx.course.Title, instructorShare, adminShare),
	)

	return &payout, nil
}
