package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareSplitEvenPrice(t *testing.T) {
	assert.Equal(t, 700.0, InstructorShare(1000))
	assert.Equal(t, 300.0, PlatformShare(1000))
	assert.Equal(t, 10500.0, InstructorShare(15000))
	assert.Equal(t, 4500.0, PlatformShare(15000))
}

func TestShareSplitRoundsHalfUp(t *testing.T) {
	// 995 * 0.7 = 696.5 and 995 * 0.3 = 298.5; both round up.
	assert.Equal(t, 697.0, InstructorShare(995))
	assert.Equal(t, 299.0, PlatformShare(995))
}

func TestShareSplitDriftIsAccepted(t *testing.T) {
	// Each share rounds independently, so their sum can exceed the price
	// by one. The ledger reports the rounded figures as-is.
	price := 995.0
	assert.Equal(t, price+1, InstructorShare(price)+PlatformShare(price))

	// 999 * 0.7 = 699.3 rounds down, 999 * 0.3 = 299.7 rounds up; no drift.
	assert.Equal(t, 999.0, InstructorShare(999)+PlatformShare(999))
}

func TestShareSplitZero(t *testing.T) {
	assert.Equal(t, 0.0, InstructorShare(0))
	assert.Equal(t, 0.0, PlatformShare(0))
}

func TestGrossRevenueAllVersusApproved(t *testing.T) {
	setupTestDB(t)

	instructor := createUser(t, "instructor")
	course := createCourse(t, instructor, 1000)
	cheap := createCourse(t, instructor, 500)

	s1 := createUser(t, "student")
	s2 := createUser(t, "student")
	createEnrollment(t, s1, course, "Approved")
	createEnrollment(t, s2, cheap, "Pending")

	all, err := GrossRevenueAll()
	require.NoError(t, err)
	assert.Equal(t, 1500.0, all)

	approved, err := GrossRevenueApproved()
	require.NoError(t, err)
	assert.Equal(t, 1000.0, approved)
}

func TestGrossRevenueEmpty(t *testing.T) {
	setupTestDB(t)

	all, err := GrossRevenueAll()
	require.NoError(t, err)
	assert.Equal(t, 0.0, all)
}
