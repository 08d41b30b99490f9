package teacherController

import (
	"bytes"
	"eduapi/config"
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	teacherValidator "eduapi/validators/teacher"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupTest(t *testing.T) (*fiber.App, *gorm.DB, string, models.Teacher) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:          "0123456789abcdef0123456789abcdef",
		AuthHeader:      "Authorization",
		TokenTTLMinutes: 60,
	}

	db, err := gorm.Open(sqlite.Open("file:teachertest?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Teacher{}, &models.Course{}))

	for _, m := range []interface{}{&models.Course{}, &models.Teacher{}, &models.User{}} {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m)
	}

	database.Database = database.DbInstance{Db: db}

	user := models.User{Username: "prof", Password: "x", Phone: "400", Nickname: "prof", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&user).Error)
	teacher := models.Teacher{UserID: user.ID}
	require.NoError(t, db.Create(&teacher).Error)

	token, err := middleware.GenerateJWT(user.ID, models.RoleTeacher, user.Username)
	require.NoError(t, err)

	app := fiber.New()
	group := app.Group("/api/teacher", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleTeacher))
	group.Get("/info", GetInfo)
	group.Put("/info", teacherValidator.UpdateTeacher(), UpdateProfile)
	group.Get("/courses", GetCourses)

	return app, db, token, teacher
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) envelope {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestGetCoursesScopedToOwner(t *testing.T) {
	app, db, token, teacher := setupTest(t)

	require.NoError(t, db.Create(&models.Course{Title: "Mine", CategoryID: 1, TeacherID: teacher.ID}).Error)
	require.NoError(t, db.Create(&models.Course{Title: "Theirs", CategoryID: 1, TeacherID: teacher.ID + 100}).Error)

	env := doRequest(t, app, http.MethodGet, "/api/teacher/courses", token, nil)
	require.Equal(t, http.StatusOK, env.Code)

	var courses []models.Course
	require.NoError(t, json.Unmarshal(env.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Mine", courses[0].Title)
}

func TestUpdateProfileAndInfo(t *testing.T) {
	app, db, token, teacher := setupTest(t)

	env := doRequest(t, app, http.MethodPut, "/api/teacher/info", token, fiber.Map{
		"realName": "Dr. Prof",
		"title":    "Senior Lecturer",
		"nickname": "drprof",
	})
	require.Equal(t, http.StatusOK, env.Code)

	var stored models.Teacher
	require.NoError(t, db.Where("id = ?", teacher.ID).First(&stored).Error)
	assert.Equal(t, "Dr. Prof", stored.RealName)
	assert.Equal(t, "Senior Lecturer", stored.Title)

	env = doRequest(t, app, http.MethodGet, "/api/teacher/info", token, nil)
	require.Equal(t, http.StatusOK, env.Code)

	var info struct {
		Nickname string `json:"nickname"`
		Title    string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "drprof", info.Nickname)
	assert.Equal(t, "Senior Lecturer", info.Title)
}

func TestTeacherRoutesRejectStudents(t *testing.T) {
	app, _, _, _ := setupTest(t)

	studentToken, err := middleware.GenerateJWT(999, models.RoleStudent, "student")
	require.NoError(t, err)

	env := doRequest(t, app, http.MethodGet, "/api/teacher/info", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, env.Code)
}
