package services

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EarningsSummary is an instructor's balance sheet, recomputed from the
// payout and withdrawal ledgers on every call. Gross sales and platform fee
// are derived back from the 70% net, the same way the earnings page reports
// them.
type EarningsSummary struct {
	TotalSales          float64 `json:"total_sales"`
	EarningsFromCourses float64 `json:"earnings_from_courses"`
	PlatformFee         float64 `json:"platform_fee"`
	TotalWithdrawals    float64 `json:"total_withdrawals"`
	CurrentBalance      float64 `json:"current_balance"`
}

// MonthlyEarnings is one row of the instructor earnings table.
type MonthlyEarnings struct {
	Month               string  `json:"month"`
	TotalSales          float64 `json:"total_sales"`
	PlatformFee         float64 `json:"platform_fee"`
	EarningsFromCourses float64 `json:"earnings_from_courses"`
}

// DueTotals summarizes the admin payouts board: total_due counts every
// unpaid enrollment for display, approved_due only the Approved ones that
// are actually payable. Pending enrollments never reach approved_due.
type DueTotals struct {
	TotalDue    float64 `json:"total_due"`
	ApprovedDue float64 `json:"approved_due"`
}

// InstructorEarnings reconciles an instructor's balance from scratch:
// sum of their payouts minus sum of their withdrawals. Empty history is 0.
func InstructorEarnings(instructorID uuid.UUID) (EarningsSummary, error) {
	return instructorEarnings(database.DB, instructorID)
}

func instructorEarnings(db *gorm.DB, instructorID uuid.UUID) (EarningsSummary, error) {
	var summary EarningsSummary

	var totalPayouts float64
	err := db.Model(&models.Payout{}).
		Where("instructor_id = ?", instructorID).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&totalPayouts)
	if err != nil {
		return summary, err
	}

	var totalWithdrawals float64
	err = db.Model(&models.Withdrawal{}).
		Where("role = ? AND instructor_id = ?", models.WithdrawalRoleInstructor, instructorID).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&totalWithdrawals)
	if err != nil {
		return summary, err
	}

	summary.EarningsFromCourses = totalPayouts
	summary.TotalWithdrawals = totalWithdrawals
	summary.CurrentBalance = totalPayouts - totalWithdrawals
	summary.TotalSales = grossFromNet(totalPayouts)
	summary.PlatformFee = summary.TotalSales - totalPayouts
	return summary, nil
}

// grossFromNet derives the gross sales figure back from a 70% net amount.
func grossFromNet(net float64) float64 {
	if net == 0 {
		return 0
	}
	gross, _ := decimal.NewFromFloat(net).
		Div(decimal.NewFromFloat(InstructorShareRate)).
		Round(0).
		Float64()
	return gross
}

// MonthlyInstructorEarnings groups an instructor's payouts by the month
// they were paid, oldest first.
func MonthlyInstructorEarnings(instructorID uuid.UUID) ([]MonthlyEarnings, error) {
	var payouts []models.Payout
	err := database.DB.
		Where("instructor_id = ?", instructorID).
		Find(&payouts).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]float64)
	for _, p := range payouts {
		byMonth[p.PaidAt.Format("2006-01")] += p.Amount
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]MonthlyEarnings, 0, len(keys))
	for _, k := range keys {
		net := byMonth[k]
		gross := grossFromNet(net)
		month, _ := time.Parse("2006-01", k)
		rows = append(rows, MonthlyEarnings{
			Month:               month.Format("January 2006"),
			TotalSales:          gross,
			PlatformFee:         gross - net,
			EarningsFromCourses: net,
		})
	}
	return rows, nil
}

// PayoutDueTotals walks every enrollment not yet marked Paid and totals the
// instructor shares owed on them.
func PayoutDueTotals() (DueTotals, error) {
	var rows []struct {
		Price          float64
		ApprovalStatus string
	}
	err := database.DB.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.payout_status IS NULL OR enrollments.payout_status <> ?", models.PayoutStatusPaid).
		Select("courses.price AS price, enrollments.approval_status AS approval_status").
		Scan(&rows).Error
	if err != nil {
		return DueTotals{}, err
	}

	var totals DueTotals
	for _, row := range rows {
		share := InstructorShare(row.Price)
		totals.TotalDue += share
		if row.ApprovalStatus == models.EnrollmentApproved {
			totals.ApprovedDue += share
		}
	}
	return totals, nil
}

// ReconcilePlatformBalance recomputes the admin's withdrawable commission
// from the event log alone: the 30% share of every enrollment processed
// through the platform-crediting payout path, minus every admin withdrawal.
// This is the ground truth the cached PlatformBalance row must agree with.
func ReconcilePlatformBalance() (float64, error) {
	return reconcilePlatformBalance(database.DB)
}

func reconcilePlatformBalance(db *gorm.DB) (float64, error) {
	// Read the payout and withdrawal ledgers only. Courses can be deleted
	// after their payouts were processed; the commission captured on each
	// payout row must keep counting regardless.
	var commission float64
	err := db.Model(&models.Payout{}).
		Where("payout_type = ?", models.PayoutTypePendingProcessed).
		Select("COALESCE(SUM(commission_amount), 0)").
		Row().Scan(&commission)
	if err != nil {
		return 0, err
	}

	var withdrawn float64
	err = db.Model(&models.Withdrawal{}).
		Where("role = ?", models.WithdrawalRoleAdmin).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&withdrawn)
	if err != nil {
		return 0, err
	}

	return commission - withdrawn, nil
}

// AdminCommissionAccrued is the dashboard's accrual-basis commission figure:
// 30% of gross revenue over all enrollments, whether or not their payouts
// have been processed. It deliberately differs from the withdrawable balance
// while unprocessed enrollments exist.
func AdminCommissionAccrued() (float64, error) {
	return adminCommissionAccrued(database.DB)
}

// ensurePlatformBalance returns the cached balance row, lazily seeding it
// from reconciliation when missing. Concurrent initializations converge on
// the first writer instead of clobbering each other.
func ensurePlatformBalance(tx *gorm.DB) (*models.PlatformBalance, error) {
	var pb models.PlatformBalance
	err := tx.First(&pb, "id = ?", models.PlatformBalanceID).Error
	if err == nil {
		return &pb, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	balance, err := reconcilePlatformBalance(tx)
	if err != nil {
		return nil, err
	}

	seed := models.PlatformBalance{ID: models.PlatformBalanceID, Balance: balance}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}
	if err := tx.First(&pb, "id = ?", models.PlatformBalanceID).Error; err != nil {
		return nil, err
	}
	return &pb, nil
}
