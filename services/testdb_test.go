package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the global connection at a fresh in-memory sqlite
// database. Single connection, so transactions behave like production.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Payment{},
		&models.Payout{},
		&models.Withdrawal{},
		&models.PlatformBalance{},
		&models.AdminNotification{},
	)
	require.NoError(t, err)

	database.DB = db
}

func createUser(t *testing.T, role string) models.User {
	t.Helper()
	user := models.User{
		FullName: role + " user",
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, instructor models.User, price float64) models.Course {
	t.Helper()
	course := models.Course{
		InstructorID: instructor.ID,
		Title:        "Course " + uuid.NewString()[:8],
		Category:     "Programming",
		Price:        price,
		Status:       "approved",
		IsAvailable:  true,
	}
	require.NoError(t, database.DB.Create(&course).Error)
	return course
}

func createEnrollment(t *testing.T, student models.User, course models.Course, approvalStatus string) models.Enrollment {
	t.Helper()
	enrollment := models.Enrollment{
		StudentID:      student.ID,
		CourseID:       course.ID,
		EnrolledAt:     time.Now().UTC(),
		ApprovalStatus: approvalStatus,
	}
	require.NoError(t, database.DB.Create(&enrollment).Error)
	return enrollment
}

func createPayout(t *testing.T, enrollment models.Enrollment, course models.Course, amount float64, payoutType *string) models.Payout {
	t.Helper()
	payout := models.Payout{
		EnrollmentID: enrollment.ID,
		InstructorID: course.InstructorID,
		CourseID:     course.ID,
		Amount:       amount,
		PaidAt:       time.Now().UTC(),
		PaidBy:       "Test Admin",
		PayoutType:   payoutType,
	}
	if payoutType != nil && *payoutType == models.PayoutTypePendingProcessed {
		payout.CommissionAmount = PlatformShare(course.Price)
	}
	require.NoError(t, database.DB.Create(&payout).Error)
	return payout
}
