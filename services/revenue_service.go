package services

import (
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Revenue split: 70% of a course's price to the instructor, 30% retained by
// the platform.
const (
	InstructorShareRate = 0.7
	PlatformShareRate   = 0.3
)

// InstructorShare returns the instructor's 70% cut of a course price,
// rounded half-up to the nearest whole kyat.
func InstructorShare(price float64) float64 {
	return roundedShare(price, InstructorShareRate)
}

// PlatformShare returns the platform's 30% commission on a course price,
// rounded half-up to the nearest whole kyat.
//
// The two shares are rounded independently, so for odd prices their sum can
// drift one kyat from the price. That drift is accepted and reported as-is;
// nothing in the ledger tries to reconcile it away.
func PlatformShare(price float64) float64 {
	return roundedShare(price, PlatformShareRate)
}

func roundedShare(price, rate float64) float64 {
	share, _ := decimal.NewFromFloat(price).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).
		Float64()
	return share
}

// GrossRevenueAll sums course prices over every enrollment regardless of
// approval status. This is the figure the admin earnings dashboard shows.
func GrossRevenueAll() (float64, error) {
	return grossRevenue(database.DB, false)
}

// GrossRevenueApproved restricts the sum to Approved enrollments, the only
// ones whose revenue is actually payable. The two views disagree on purpose
// whenever pending enrollments exist; callers pick the one they mean.
func GrossRevenueApproved() (float64, error) {
	return grossRevenue(database.DB, true)
}

func grossRevenue(db *gorm.DB, approvedOnly bool) (float64, error) {
	query := db.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Select("COALESCE(SUM(courses.price), 0)")
	if approvedOnly {
		query = query.Where("enrollments.approval_status = ?", models.EnrollmentApproved)
	}

	var total float64
	if err := query.Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
