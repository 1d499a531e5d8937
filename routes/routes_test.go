package routes

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"smarty/config"
	"smarty/models"
	"smarty/services"
	"smarty/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	App            *fiber.App
	DB             *gorm.DB
	Cfg            *config.Config
	ProfessorToken string
	StudentToken   string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret", ServerPort: "8080"}

	app := fiber.New()
	SetupRoutes(app, db, cfg)

	professorToken, err := utils.GenerateJWTToken(1, "prof@smarty.edu", "professor", cfg)
	require.NoError(t, err)
	studentToken, err := utils.GenerateJWTToken(2, "ana@smarty.edu", "student", cfg)
	require.NoError(t, err)

	return &testApp{App: app, DB: db, Cfg: cfg, ProfessorToken: professorToken, StudentToken: studentToken}
}

func (ta *testApp) request(t *testing.T, method, path, token string, body interface{}) (map[string]interface{}, int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := ta.App.Test(req)
	require.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return result, resp.StatusCode
}

func (ta *testApp) seedCourse(t *testing.T, code string) uint {
	t.Helper()

	result, status := ta.request(t, "POST", "/api/courses", ta.ProfessorToken, map[string]interface{}{
		"code":      code,
		"full_name": "Course " + code,
		"points":    6,
		"year":      1,
		"semester":  1,
	})
	require.Equal(t, fiber.StatusCreated, status)
	course := result["course"].(map[string]interface{})
	return uint(course["id"].(float64))
}

func TestRoutesRequireToken(t *testing.T) {
	ta := newTestApp(t)

	_, status := ta.request(t, "GET", "/api/courses/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestStudentCannotCreateCourse(t *testing.T) {
	ta := newTestApp(t)

	_, status := ta.request(t, "POST", "/api/courses", ta.StudentToken, map[string]interface{}{
		"code":      "SE101",
		"full_name": "Software Engineering",
		"points":    6,
		"year":      1,
		"semester":  1,
	})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestCreateCourse(t *testing.T) {
	ta := newTestApp(t)

	result, status := ta.request(t, "POST", "/api/courses", ta.ProfessorToken, map[string]interface{}{
		"code":      "SE101",
		"full_name": "Software Engineering",
		"points":    6,
		"year":      1,
		"semester":  1,
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Course created", result["message"])
	assert.Equal(t, "SE101", result["course"].(map[string]interface{})["code"])
}

func TestCreateCourseValidation(t *testing.T) {
	ta := newTestApp(t)

	result, status := ta.request(t, "POST", "/api/courses", ta.ProfessorToken, map[string]interface{}{
		"code":      "SE101",
		"full_name": "Software Engineering",
		"points":    6,
		"year":      7,
		"semester":  1,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, false, result["success"])
}

func TestCreateTaskConflictAndBudget(t *testing.T) {
	ta := newTestApp(t)
	courseID := ta.seedCourse(t, "SE101")

	task := map[string]interface{}{
		"type":            "HOMEWORK",
		"max_points":      10,
		"number_of_tasks": 4,
		"course_id":       courseID,
	}
	_, status := ta.request(t, "POST", "/api/tasks", ta.ProfessorToken, task)
	require.Equal(t, fiber.StatusCreated, status)

	// second HOMEWORK task on the same course
	result, status := ta.request(t, "POST", "/api/tasks", ta.ProfessorToken, task)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, false, result["success"])

	// 40 already allocated, 16*2 breaks the 70 point cap
	result, status = ta.request(t, "POST", "/api/tasks", ta.ProfessorToken, map[string]interface{}{
		"type":            "PROJECT",
		"max_points":      16,
		"number_of_tasks": 2,
		"course_id":       courseID,
	})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "The limit of 70 points for saving tasks has been reached", result["message"])
}

func TestCreateTaskUnknownType(t *testing.T) {
	ta := newTestApp(t)
	courseID := ta.seedCourse(t, "SE101")

	_, status := ta.request(t, "POST", "/api/tasks", ta.ProfessorToken, map[string]interface{}{
		"type":            "ESSAY",
		"max_points":      10,
		"number_of_tasks": 4,
		"course_id":       courseID,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestGetCourseNotFound(t *testing.T) {
	ta := newTestApp(t)

	result, status := ta.request(t, "GET", "/api/courses/42", ta.StudentToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Course with id 42 doesn't exist", result["message"])
}

func TestBadJSONBody(t *testing.T) {
	ta := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/courses", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", ta.ProfessorToken)

	resp, err := ta.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Cannot parse JSON", result["error"])
}

func TestLoginRoundTrip(t *testing.T) {
	ta := newTestApp(t)

	// seed an account the way the student service does
	accounts := services.NewAccountService(ta.DB)
	majors := services.NewMajorService(ta.DB)
	statuses := services.NewStatusService(ta.DB)
	students := services.NewStudentService(ta.DB, majors, statuses, accounts)

	major, err := majors.CreateMajor("Software Engineering", "")
	require.NoError(t, err)
	status := models.StudyStatus{Name: "Active"}
	require.NoError(t, ta.DB.Create(&status).Error)

	_, err = students.CreateStudent(services.StudentInput{
		Name:     "Ana",
		Surname:  "Anic",
		Index:    2021001,
		Year:     2,
		Email:    "ana@smarty.edu",
		Password: "password123",
		MajorID:  major.ID,
		StatusID: status.ID,
	})
	require.NoError(t, err)

	result, code := ta.request(t, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "ana@smarty.edu",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Login successful", result["message"])
	assert.NotEmpty(t, result["token"])

	result, code = ta.request(t, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "ana@smarty.edu",
		"password": "wrongpassword",
	})
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, false, result["success"])
}

func TestActivityAndExamFlow(t *testing.T) {
	ta := newTestApp(t)
	courseID := ta.seedCourse(t, "SE101")

	_, code := ta.request(t, "POST", "/api/tasks", ta.ProfessorToken, map[string]interface{}{
		"type":            "HOMEWORK",
		"max_points":      35,
		"number_of_tasks": 2,
		"course_id":       courseID,
	})
	require.Equal(t, fiber.StatusCreated, code)

	// the exam flow needs a real student on record
	accounts := services.NewAccountService(ta.DB)
	majors := services.NewMajorService(ta.DB)
	statuses := services.NewStatusService(ta.DB)
	students := services.NewStudentService(ta.DB, majors, statuses, accounts)

	major, err := majors.CreateMajor("Software Engineering", "")
	require.NoError(t, err)
	studyStatus := models.StudyStatus{Name: "Active"}
	require.NoError(t, ta.DB.Create(&studyStatus).Error)

	student, err := students.CreateStudent(services.StudentInput{
		Name:     "Ana",
		Surname:  "Anic",
		Index:    2021001,
		Year:     2,
		Email:    "ana@smarty.edu",
		Password: "password123",
		MajorID:  major.ID,
		StatusID: studyStatus.ID,
	})
	require.NoError(t, err)

	// exam before any activities: below the 35 point threshold
	result, code := ta.request(t, "POST", "/api/exams", ta.ProfessorToken, map[string]interface{}{
		"name":                "Final",
		"points":              25,
		"date_of_examination": "2025-06-10",
		"student_id":          student.ID,
		"course_id":           courseID,
	})
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, false, result["success"])

	for i, name := range []string{"Homework 1", "Homework 2"} {
		_, code = ta.request(t, "POST", "/api/activities", ta.ProfessorToken, map[string]interface{}{
			"activity_name": name,
			"points":        30,
			"task_id":       1,
			"student_id":    student.ID,
		})
		require.Equal(t, fiber.StatusCreated, code, "activity %d", i)
	}

	result, code = ta.request(t, "POST", "/api/exams", ta.ProfessorToken, map[string]interface{}{
		"name":                "Final",
		"points":              25,
		"date_of_examination": "2025-06-10",
		"student_id":          student.ID,
		"course_id":           courseID,
	})
	require.Equal(t, fiber.StatusCreated, code)
	exam := result["exam"].(map[string]interface{})
	assert.Equal(t, 85.0, exam["total_points"])
	assert.Equal(t, 9.0, exam["grade"])

	// retaking a passed exam
	_, code = ta.request(t, "POST", "/api/exams", ta.ProfessorToken, map[string]interface{}{
		"name":                "Retake",
		"points":              25,
		"date_of_examination": "2025-09-01",
		"student_id":          student.ID,
		"course_id":           courseID,
	})
	assert.Equal(t, fiber.StatusConflict, code)
}
