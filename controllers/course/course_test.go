package courseController

import (
	"bytes"
	"eduapi/config"
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	courseValidator "eduapi/validators/course"
	"encoding/json"
	"fmt"
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

type fixture struct {
	app          *fiber.App
	db           *gorm.DB
	ownerToken   string
	otherToken   string
	adminToken   string
	ownerTeacher models.Teacher
	category     models.Category
}

func setupTest(t *testing.T) *fixture {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:          "0123456789abcdef0123456789abcdef",
		AuthHeader:      "Authorization",
		TokenTTLMinutes: 60,
	}

	db, err := gorm.Open(sqlite.Open("file:coursetest?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Teacher{}, &models.Category{},
		&models.Course{}, &models.Chapter{}, &models.Video{},
	))

	for _, m := range []interface{}{
		&models.Video{}, &models.Chapter{}, &models.Course{},
		&models.Category{}, &models.Teacher{}, &models.User{},
	} {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m)
	}

	database.Database = database.DbInstance{Db: db}

	f := &fixture{db: db}

	owner := models.User{Username: "owner", Password: "x", Phone: "100", Nickname: "owner", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&owner).Error)
	f.ownerTeacher = models.Teacher{UserID: owner.ID}
	require.NoError(t, db.Create(&f.ownerTeacher).Error)

	other := models.User{Username: "other", Password: "x", Phone: "101", Nickname: "other", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.Teacher{UserID: other.ID}).Error)

	admin := models.User{Username: "admin", Password: "x", Phone: "102", Nickname: "admin", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	f.category = models.Category{Name: "Programming"}
	require.NoError(t, db.Create(&f.category).Error)

	f.ownerToken, err = middleware.GenerateJWT(owner.ID, models.RoleTeacher, owner.Username)
	require.NoError(t, err)
	f.otherToken, err = middleware.GenerateJWT(other.ID, models.RoleTeacher, other.Username)
	require.NoError(t, err)
	f.adminToken, err = middleware.GenerateJWT(admin.ID, models.RoleAdmin, admin.Username)
	require.NoError(t, err)

	app := fiber.New()
	group := app.Group("/api/course", middleware.JWTMiddleware)
	group.Get("/page", courseValidator.CoursePage(), CoursePage)
	group.Get("/:id", courseValidator.CourseID(), GetCourseDetail)
	group.Get("/:courseId/chapters", GetChaptersWithVideos)
	group.Post("/", middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), courseValidator.AddCourse(), AddCourse)
	group.Put("/:id", middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseID(), courseValidator.UpdateCourse(), UpdateCourse)
	group.Delete("/:id", middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), courseValidator.CourseID(), DeleteCourse)

	chapterGroup := app.Group("/api/course/chapter", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleTeacher))
	chapterGroup.Post("/", courseValidator.AddChapter(), AddChapter)
	chapterGroup.Put("/:id", courseValidator.UpdateChapter(), UpdateChapter)
	chapterGroup.Delete("/:id", DeleteChapter)

	videoGroup := app.Group("/api/course/video", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleTeacher))
	videoGroup.Post("/", courseValidator.AddVideo(), AddVideo)
	videoGroup.Put("/:id", courseValidator.UpdateVideo(), UpdateVideo)
	videoGroup.Delete("/:id", DeleteVideo)

	f.app = app
	return f
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

func (f *fixture) createCourse(t *testing.T, title string) models.Course {
	t.Helper()
	env := doRequest(t, f.app, http.MethodPost, "/api/course/", f.ownerToken, fiber.Map{
		"title":      title,
		"categoryId": f.category.ID,
		"price":      9900,
	})
	require.Equal(t, http.StatusCreated, env.Code, env.Msg)
	var course models.Course
	require.NoError(t, json.Unmarshal(env.Data, &course))
	return course
}

func TestAddCourseStartsAsDraft(t *testing.T) {
	f := setupTest(t)

	course := f.createCourse(t, "Go Basics")
	assert.Equal(t, models.CourseDraft, course.Status)
	assert.Equal(t, f.ownerTeacher.ID, course.TeacherID)
	assert.Equal(t, int64(9900), course.Price)
}

func TestAddCourseDuplicateTitle(t *testing.T) {
	f := setupTest(t)

	f.createCourse(t, "Go Basics")
	env := doRequest(t, f.app, http.MethodPost, "/api/course/", f.ownerToken, fiber.Map{
		"title":      "Go Basics",
		"categoryId": f.category.ID,
	})
	assert.Equal(t, http.StatusConflict, env.Code)
}

func TestAddCourseUnknownCategory(t *testing.T) {
	f := setupTest(t)

	env := doRequest(t, f.app, http.MethodPost, "/api/course/", f.ownerToken, fiber.Map{
		"title":      "Lost Course",
		"categoryId": 9999,
	})
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestUpdateCourseOwnership(t *testing.T) {
	f := setupTest(t)
	course := f.createCourse(t, "Go Basics")

	path := fmt.Sprintf("/api/course/%d", course.ID)

	env := doRequest(t, f.app, http.MethodPut, path, f.otherToken, fiber.Map{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, env.Code)

	env = doRequest(t, f.app, http.MethodPut, path, f.ownerToken, fiber.Map{"title": "Go Basics 2"})
	assert.Equal(t, http.StatusOK, env.Code)

	// Admins bypass the ownership check on course updates
	env = doRequest(t, f.app, http.MethodPut, path, f.adminToken, fiber.Map{"status": models.CoursePublished})
	assert.Equal(t, http.StatusOK, env.Code)
}

func TestDeletePublishedCourseBlocked(t *testing.T) {
	f := setupTest(t)
	course := f.createCourse(t, "Go Basics")

	path := fmt.Sprintf("/api/course/%d", course.ID)
	env := doRequest(t, f.app, http.MethodPut, path, f.ownerToken, fiber.Map{"status": models.CoursePublished})
	require.Equal(t, http.StatusOK, env.Code)

	// Published courses stay, even for admins
	env = doRequest(t, f.app, http.MethodDelete, path, f.adminToken, nil)
	assert.Equal(t, http.StatusConflict, env.Code)

	env = doRequest(t, f.app, http.MethodPut, path, f.ownerToken, fiber.Map{"status": models.CourseOffline})
	require.Equal(t, http.StatusOK, env.Code)

	env = doRequest(t, f.app, http.MethodDelete, path, f.ownerToken, nil)
	assert.Equal(t, http.StatusOK, env.Code)
}

func TestChapterOwnerOnly(t *testing.T) {
	f := setupTest(t)
	course := f.createCourse(t, "Go Basics")

	body := fiber.Map{"courseId": course.ID, "title": "Intro"}

	env := doRequest(t, f.app, http.MethodPost, "/api/course/chapter/", f.otherToken, body)
	assert.Equal(t, http.StatusForbidden, env.Code)

	// Admins have no teacher profile here and are rejected by the role gate
	env = doRequest(t, f.app, http.MethodPost, "/api/course/chapter/", f.adminToken, body)
	assert.Equal(t, http.StatusForbidden, env.Code)

	env = doRequest(t, f.app, http.MethodPost, "/api/course/chapter/", f.ownerToken, body)
	assert.Equal(t, http.StatusCreated, env.Code)

	var chapter models.Chapter
	require.NoError(t, json.Unmarshal(env.Data, &chapter))
	assert.Equal(t, 1, chapter.Sort)
}

func TestDeleteChapterWithVideosBlocked(t *testing.T) {
	f := setupTest(t)
	course := f.createCourse(t, "Go Basics")

	env := doRequest(t, f.app, http.MethodPost, "/api/course/chapter/", f.ownerToken,
		fiber.Map{"courseId": course.ID, "title": "Intro"})
	require.Equal(t, http.StatusCreated, env.Code)
	var chapter models.Chapter
	require.NoError(t, json.Unmarshal(env.Data, &chapter))

	env = doRequest(t, f.app, http.MethodPost, "/api/course/video/", f.ownerToken,
		fiber.Map{"chapterId": chapter.ID, "title": "Lesson 1", "duration": 300})
	require.Equal(t, http.StatusCreated, env.Code)
	var video models.Video
	require.NoError(t, json.Unmarshal(env.Data, &video))

	chapterPath := fmt.Sprintf("/api/course/chapter/%d", chapter.ID)
	env = doRequest(t, f.app, http.MethodDelete, chapterPath, f.ownerToken, nil)
	assert.Equal(t, http.StatusConflict, env.Code)

	env = doRequest(t, f.app, http.MethodDelete, fmt.Sprintf("/api/course/video/%d", video.ID), f.ownerToken, nil)
	require.Equal(t, http.StatusOK, env.Code)

	env = doRequest(t, f.app, http.MethodDelete, chapterPath, f.ownerToken, nil)
	assert.Equal(t, http.StatusOK, env.Code)
}

func TestCourseDetailOrdering(t *testing.T) {
	f := setupTest(t)
	course := f.createCourse(t, "Go Basics")

	for _, title := range []string{"One", "Two"} {
		env := doRequest(t, f.app, http.MethodPost, "/api/course/chapter/", f.ownerToken,
			fiber.Map{"courseId": course.ID, "title": title})
		require.Equal(t, http.StatusCreated, env.Code)
	}

	env := doRequest(t, f.app, http.MethodGet, fmt.Sprintf("/api/course/%d/chapters", course.ID), f.ownerToken, nil)
	require.Equal(t, http.StatusOK, env.Code)

	var chapters []chapterVO
	require.NoError(t, json.Unmarshal(env.Data, &chapters))
	require.Len(t, chapters, 2)
	assert.Equal(t, "One", chapters[0].Title)
	assert.Equal(t, "Two", chapters[1].Title)
}

func TestCoursePageFilters(t *testing.T) {
	f := setupTest(t)
	f.createCourse(t, "Go Basics")
	f.createCourse(t, "Rust Basics")

	env := doRequest(t, f.app, http.MethodGet, "/api/course/page?title=Go", f.ownerToken, nil)
	require.Equal(t, http.StatusOK, env.Code)

	var page struct {
		Courses []models.Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Courses, 1)
	assert.Equal(t, "Go Basics", page.Courses[0].Title)
}
