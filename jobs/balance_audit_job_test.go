package jobs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Payout{},
		&models.Withdrawal{},
		&models.PlatformBalance{},
	))
	database.DB = db
}

func seedProcessedPayout(t *testing.T, price float64) {
	t.Helper()

	instructor := models.User{FullName: "I", Email: uuid.NewString() + "@x.com", Password: "p", Role: "instructor"}
	require.NoError(t, database.DB.Create(&instructor).Error)
	course := models.Course{InstructorID: instructor.ID, Title: "C", Price: price, Status: "approved"}
	require.NoError(t, database.DB.Create(&course).Error)

	processed := models.PayoutTypePendingProcessed
	payout := models.Payout{
		EnrollmentID:     uuid.New(),
		InstructorID:     instructor.ID,
		CourseID:         course.ID,
		Amount:           price * 0.7,
		CommissionAmount: price * 0.3,
		PaidAt:           time.Now().UTC(),
		PaidBy:           "Admin",
		PayoutType:       &processed,
	}
	require.NoError(t, database.DB.Create(&payout).Error)
}

func TestAuditSeedsMissingCache(t *testing.T) {
	setupAuditDB(t)
	seedProcessedPayout(t, 1000)

	AuditPlatformBalance()

	var pb models.PlatformBalance
	require.NoError(t, database.DB.First(&pb, "id = ?", models.PlatformBalanceID).Error)
	assert.Equal(t, 300.0, pb.Balance)
}

func TestAuditHealsDriftedCache(t *testing.T) {
	setupAuditDB(t)
	seedProcessedPayout(t, 1000)

	stale := models.PlatformBalance{ID: models.PlatformBalanceID, Balance: 999}
	require.NoError(t, database.DB.Create(&stale).Error)

	AuditPlatformBalance()

	var pb models.PlatformBalance
	require.NoError(t, database.DB.First(&pb, "id = ?", models.PlatformBalanceID).Error)
	assert.Equal(t, 300.0, pb.Balance)
}

func TestAuditKeepsBalanceAfterCourseDeletion(t *testing.T) {
	setupAuditDB(t)
	seedProcessedPayout(t, 1000)

	ok := models.PlatformBalance{ID: models.PlatformBalanceID, Balance: 300}
	require.NoError(t, database.DB.Create(&ok).Error)

	// Rejecting a course deletes its row; the audit must not treat the
	// already-credited commission as drift.
	require.NoError(t, database.DB.Where("1 = 1").Delete(&models.Course{}).Error)

	AuditPlatformBalance()

	var pb models.PlatformBalance
	require.NoError(t, database.DB.First(&pb, "id = ?", models.PlatformBalanceID).Error)
	assert.Equal(t, 300.0, pb.Balance)
}

func TestAuditLeavesMatchingCacheAlone(t *testing.T) {
	setupAuditDB(t)
	seedProcessedPayout(t, 1000)

	ok := models.PlatformBalance{ID: models.PlatformBalanceID, Balance: 300}
	require.NoError(t, database.DB.Create(&ok).Error)
	before := ok.UpdatedAt

	AuditPlatformBalance()

	var pb models.PlatformBalance
	require.NoError(t, database.DB.First(&pb, "id = ?", models.PlatformBalanceID).Error)
	assert.Equal(t, 300.0, pb.Balance)
	assert.Equal(t, before.Unix(), pb.UpdatedAt.Unix())
}
