package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/routes"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Payment{},
		&models.Payout{},
		&models.Withdrawal{},
		&models.PlatformBalance{},
		&models.AdminNotification{},
		&models.Review{},
		&models.Report{},
	))
	database.DB = db

	app := fiber.New()
	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.StudentRoutes(app)
	routes.InstructorRoutes(app)
	routes.AdminRoutes(app)
	return app
}

func seedAdmin(t *testing.T) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := models.User{
		FullName: "Site Admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     "admin",
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&admin).Error)
	return admin
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func register(t *testing.T, app *fiber.App, role, email string) {
	t.Helper()
	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/register/"+role, "", map[string]string{
		"full_name": "Test " + role,
		"email":     email,
		"password":  "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	register(t, app, "student", "dup@example.com")
	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/register/student", "", map[string]string{
		"full_name": "Second Account",
		"email":     "dup@example.com",
		"password":  "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	register(t, app, "student", "s@example.com")
	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "s@example.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRoleMiddleware(t *testing.T) {
	app := setupApp(t)

	register(t, app, "student", "s@example.com")
	studentToken := login(t, app, "s@example.com", "password123")

	resp, _ := doJSON(t, app, "GET", "/api/v1/admin/payouts", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/v1/instructor/courses", studentToken, map[string]interface{}{
		"title": "Nope", "category": "c", "price": 100,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// Full marketplace flow: course creation and approval, payment, enrollment
// approval, payout processing, withdrawal.
func TestEnrollmentPayoutFlow(t *testing.T) {
	app := setupApp(t)
	seedAdmin(t)

	register(t, app, "instructor", "i@example.com")
	register(t, app, "student", "s@example.com")
	instructorToken := login(t, app, "i@example.com", "password123")
	studentToken := login(t, app, "s@example.com", "password123")
	adminToken := login(t, app, "admin@example.com", "admin-pass")

	resp, course := doJSON(t, app, "POST", "/api/v1/instructor/courses", instructorToken, map[string]interface{}{
		"title":    "Intro to Go",
		"category": "Programming",
		"price":    1000,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	courseID := course["id"].(string)
	assert.Equal(t, "pending", course["status"])

	resp, _ = doJSON(t, app, "PUT", "/api/v1/admin/courses/"+courseID+"/approve", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, payBody := doJSON(t, app, "POST", "/api/v1/student/courses/"+courseID+"/pay", studentToken, map[string]string{
		"payment_method": "kbz_pay",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	enrollment := payBody["enrollment"].(map[string]interface{})
	enrollmentID := enrollment["id"].(string)
	assert.Equal(t, "Pending", enrollment["approval_status"])

	// Double payment for the same course is rejected.
	resp, _ = doJSON(t, app, "POST", "/api/v1/student/courses/"+courseID+"/pay", studentToken, map[string]string{
		"payment_method": "kbz_pay",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Admin settles the pending enrollment through the platform.
	resp, _ = doJSON(t, app, "POST", "/api/v1/admin/payouts/"+enrollmentID+"/process", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/v1/admin/payouts/"+enrollmentID+"/process", adminToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, earnings := doJSON(t, app, "GET", "/api/v1/instructor/earnings", instructorToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	summary := earnings["summary"].(map[string]interface{})
	assert.Equal(t, 700.0, summary["current_balance"])

	resp, _ = doJSON(t, app, "POST", "/api/v1/instructor/withdrawals", instructorToken, map[string]interface{}{
		"amount": 800,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/v1/instructor/withdrawals", instructorToken, map[string]interface{}{
		"amount": 700,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, view := doJSON(t, app, "GET", "/api/v1/admin/withdrawals", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 300.0, view["available_commission"])
}

func TestMarkPayoutPaidEndpoint(t *testing.T) {
	app := setupApp(t)
	seedAdmin(t)
	adminToken := login(t, app, "admin@example.com", "admin-pass")

	resp, _ := doJSON(t, app, "POST", "/api/v1/admin/payouts/not-a-uuid/mark-paid", adminToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/v1/admin/payouts/00000000-0000-0000-0000-000000000001/mark-paid", adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
