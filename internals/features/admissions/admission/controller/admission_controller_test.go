package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/features/admissions/admission/service"
	userService "schoolku_backend/internals/features/users/user/service"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateAll(db))

	roles := userService.NewRoleRegistry()
	require.NoError(t, roles.Load(db))

	ctrl := NewAdmissionController(db, service.NewLifecycleService(db, roles))

	app := fiber.New()
	app.Post("/api/admissions", ctrl.CreateAdmission)
	app.Get("/api/admissions/:id", ctrl.GetAdmissionByID)
	app.Put("/api/admissions/:id", ctrl.UpdateAdmission)
	app.Post("/api/admissions/:id/approve", ctrl.ApproveAdmission)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	return resp.StatusCode, payload
}

func TestCreateAdmissionEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, payload := doJSON(t, app, "POST", "/api/admissions",
		`{"student_name":"Jane Doe","email":"jane@example.com","grade":"3"}`)

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, payload["success"])

	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["student_id"])
	assert.Len(t, data["generated_password"], 8)

	creds, ok := data["login_credentials"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", creds["email"])
	assert.Equal(t, "jane", creds["username"])
	assert.Equal(t, data["generated_password"], creds["password"])
}

func TestCreateAdmissionEndpointValidation(t *testing.T) {
	app, _ := newTestApp(t)

	status, payload := doJSON(t, app, "POST", "/api/admissions", `{"student_name":"No Email"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, payload["success"])
	assert.NotNil(t, payload["errors"])
}

func TestUpdateAdmissionRejectsStudentID(t *testing.T) {
	app, _ := newTestApp(t)

	status, payload := doJSON(t, app, "POST", "/api/admissions",
		`{"student_name":"Jane Doe","email":"jane@example.com"}`)
	require.Equal(t, fiber.StatusCreated, status)
	data := payload["data"].(map[string]interface{})
	studentID := data["student_id"].(string)

	status, payload = doJSON(t, app, "PUT", "/api/admissions/"+studentID,
		`{"student_id":"HACKED-ID","grade":"9"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, payload["success"])
	errs, ok := payload["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "student_id")

	// the original row is untouched
	status, payload = doJSON(t, app, "GET", "/api/admissions/"+studentID, "")
	require.Equal(t, fiber.StatusOK, status)
	row := payload["data"].(map[string]interface{})
	assert.Equal(t, studentID, row["student_id"])
	assert.NotEqual(t, "9", row["grade"])
}

func TestApproveEndpointTwice(t *testing.T) {
	app, _ := newTestApp(t)

	status, payload := doJSON(t, app, "POST", "/api/admissions",
		`{"student_name":"Jane Doe","email":"jane@example.com"}`)
	require.Equal(t, fiber.StatusCreated, status)
	studentID := payload["data"].(map[string]interface{})["student_id"].(string)

	status, payload = doJSON(t, app, "POST", "/api/admissions/"+studentID+"/approve", "")
	require.Equal(t, fiber.StatusOK, status)
	data := payload["data"].(map[string]interface{})
	assert.NotNil(t, data["created_student"])

	status, payload = doJSON(t, app, "POST", "/api/admissions/"+studentID+"/approve", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, payload["success"])
}
