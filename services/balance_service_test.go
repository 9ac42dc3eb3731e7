package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
)

func TestInstructorEarningsEmptyHistory(t *testing.T) {
	setupTestDB(t)
	instructor := createUser(t, "instructor")

	summary, err := InstructorEarnings(instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.CurrentBalance)
	assert.Equal(t, 0.0, summary.TotalSales)
	assert.Equal(t, 0.0, summary.TotalWithdrawals)
}

func TestInstructorEarningsFromLedgers(t *testing.T) {
	setupTestDB(t)

	instructor := createUser(t, "instructor")
	course := createCourse(t, instructor, 1000)
	cheap := createCourse(t, instructor, 500)
	s1 := createUser(t, "student")
	s2 := createUser(t, "student")
	e1 := createEnrollment(t, s1, course, "Approved")
	e2 := createEnrollment(t, s2, cheap, "Approved")

	createPayout(t, e1, course, 700, nil)
	createPayout(t, e2, cheap, 350, nil)

	_, err := RequestInstructorWithdrawal(instructor.ID, 200)
	require.NoError(t, err)

	summary, err := InstructorEarnings(instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1050.0, summary.EarningsFromCourses)
	assert.Equal(t, 200.0, summary.TotalWithdrawals)
	assert.Equal(t, 850.0, summary.CurrentBalance)
	// Gross is derived back from the 70% net: 1050 / 0.7.
	assert.Equal(t, 1500.0, summary.TotalSales)
	assert.Equal(t, 450.0, summary.PlatformFee)
}

func TestInstructorEarningsIgnoreOtherInstructors(t *testing.T) {
	setupTestDB(t)

	mine := createUser(t, "instructor")
	other := createUser(t, "instructor")
	myCourse := createCourse(t, mine, 1000)
	otherCourse := createCourse(t, other, 2000)
	s := createUser(t, "student")
	e1 := createEnrollment(t, s, myCourse, "Approved")
	e2 := createEnrollment(t, s, otherCourse, "Approved")

	createPayout(t, e1, myCourse, 700, nil)
	createPayout(t, e2, otherCourse, 1400, nil)

	summary, err := InstructorEarnings(mine.ID)
	require.NoError(t, err)
	assert.Equal(t, 700.0, summary.CurrentBalance)
}

func TestPayoutDueTotals(t *testing.T) {
	setupTestDB(t)

	instructor := createUser(t, "instructor")
	course := createCourse(t, instructor, 1000)
	cheap := createCourse(t, instructor, 500)
	third := createCourse(t, instructor, 2000)

	s1 := createUser(t, "student")
	s2 := createUser(t, "student")
	s3 := createUser(t, "student")
	createEnrollment(t, s1, course, "Approved")
	createEnrollment(t, s2, cheap, "Pending")
	paid := createEnrollment(t, s3, third, "Approved")

	// Already settled enrollments drop off the board entirely.
	paidStatus := models.PayoutStatusPaid
	require.NoError(t, database.DB.Model(&paid).Update("payout_status", paidStatus).Error)

	totals, err := PayoutDueTotals()
	require.NoError(t, err)
	assert.Equal(t, 1050.0, totals.TotalDue)    // 700 + 350
	assert.Equal(t, 700.0, totals.ApprovedDue)  // pending 350 excluded
}

func TestMonthlyInstructorEarnings(t *testing.T) {
	setupTestDB(t)

	instructor := createUser(t, "instructor")
	course := createCourse(t, instructor, 1000)
	s1 := createUser(t, "student")
	s2 := createUser(t, "student")
	cheap := createCourse(t, instructor, 500)
	e1 := createEnrollment(t, s1, course, "Approved")
	e2 := createEnrollment(t, s2, cheap, "Approved")

	createPayout(t, e1, course, 700, nil)
	createPayout(t, e2, cheap, 350, nil)

	rows, err := MonthlyInstructorEarnings(instructor.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1050.0, rows[0].EarningsFromCourses)
	assert.Equal(t, 1500.0, rows[0].TotalSales)
	assert.Equal(t, 450.0, rows[0].PlatformFee)
}

func TestReconcilePlatformBalanceCountsOnlyProcessedPayouts(t *testing.T) {
	setupTestDB(t)

	instructor := createUser(t, "instructor")
	course := createCourse(t, instructor, 1000)
	cheap := createCourse(t, instructor, 500)
	s1 := createUser(t, "student")
	s2 := createUser(t, "student")
	e1 := createEnrollment(t, s1, course, "Approved")
	e2 := createEnrollment(t, s2, cheap, "Approved")

	// A manual payout never touches the platform balance.
	createPayout(t, e1, course, 700, nil)

	processed := models.PayoutTypePendingProcessed
	createPayout(t, e2, cheap, 350, &processed)

	balance, err := ReconcilePlatformBalance()
	require.NoError(t, err)
	assert.Equal(t, 150.0, balance) // 30% of 500 only
}

func TestReconcileSurvivesCourseDeletion(t *testing.T) {
	setupTestDB(t)

	instructor := createUser(t, "instructor")
	course := createCourse(t, instructor, 1000)
	student := createUser(t, "student")
	enrollment := createEnrollment(t, student, course, "Pending")

	_, err := ProcessPendingPayout(enrollment.ID, "Admin One")
	require.NoError(t, err)

	balance, err := ReconcilePlatformBalance()
	require.NoError(t, err)
	require.Equal(t, 300.0, balance)

	// An admin rejecting the course later hard-deletes its row. The
	// commission was committed to the ledger and must keep counting.
	require.NoError(t, database.DB.Delete(&course).Error)

	balance, err = ReconcilePlatformBalance()
	require.NoError(t, err)
	assert.Equal(t, 300.0, balance)

	var pb models.PlatformBalance
	require.NoError(t, database.DB.First(&pb, "id = ?", models.PlatformBalanceID).Error)
	assert.Equal(t, balance, pb.Balance)
}
