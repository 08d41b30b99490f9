package categoryController

import (
	"bytes"
	"eduapi/config"
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	categoryValidator "eduapi/validators/category"
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

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:          "0123456789abcdef0123456789abcdef",
		AuthHeader:      "Authorization",
		TokenTTLMinutes: 60,
	}

	db, err := gorm.Open(sqlite.Open("file:categorytest?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Course{}))

	// Wipe between tests; the shared in-memory DB outlives a single test
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Category{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Course{})

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	group := app.Group("/api/category", middleware.JWTMiddleware)
	group.Get("/tree", ListCategoryTree)
	group.Post("/", middleware.RequireRoles(models.RoleAdmin), categoryValidator.AddCategory(), AddCategory)
	group.Put("/:id", middleware.RequireRoles(models.RoleAdmin), categoryValidator.CategoryID(), categoryValidator.UpdateCategory(), UpdateCategory)
	group.Delete("/:id", middleware.RequireRoles(models.RoleAdmin), categoryValidator.CategoryID(), DeleteCategory)
	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateJWT(1, models.RoleAdmin, "admin")
	require.NoError(t, err)
	return token
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

func TestAddCategoryAssignsSort(t *testing.T) {
	app := setupTest(t)
	token := adminToken(t)

	first := doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Math"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Physics"})
	require.Equal(t, http.StatusCreated, second.Code)

	var cat models.Category
	require.NoError(t, json.Unmarshal(second.Data, &cat))
	assert.Equal(t, 2, cat.Sort)
}

func TestAddCategoryDuplicateSibling(t *testing.T) {
	app := setupTest(t)
	token := adminToken(t)

	env := doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Math"})
	require.Equal(t, http.StatusCreated, env.Code)

	env = doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Math"})
	assert.Equal(t, http.StatusConflict, env.Code)
}

func TestAddCategorySameNameDifferentParent(t *testing.T) {
	app := setupTest(t)
	token := adminToken(t)

	root := doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Science"})
	require.Equal(t, http.StatusCreated, root.Code)
	var rootCat models.Category
	require.NoError(t, json.Unmarshal(root.Data, &rootCat))

	env := doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Math"})
	require.Equal(t, http.StatusCreated, env.Code)

	env = doRequest(t, app, http.MethodPost, "/api/category/", token,
		fiber.Map{"name": "Math", "parentId": rootCat.ID})
	assert.Equal(t, http.StatusCreated, env.Code)
}

func TestAddCategoryMissingParent(t *testing.T) {
	app := setupTest(t)
	token := adminToken(t)

	env := doRequest(t, app, http.MethodPost, "/api/category/", token,
		fiber.Map{"name": "Orphan", "parentId": 9999})
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestAddCategoryRequiresAdmin(t *testing.T) {
	app := setupTest(t)

	token, err := middleware.GenerateJWT(2, models.RoleStudent, "student")
	require.NoError(t, err)

	env := doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, env.Code)
}

func TestDeleteCategoryGuards(t *testing.T) {
	app := setupTest(t)
	token := adminToken(t)

	root := doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Parent"})
	require.Equal(t, http.StatusCreated, root.Code)
	var rootCat models.Category
	require.NoError(t, json.Unmarshal(root.Data, &rootCat))

	child := doRequest(t, app, http.MethodPost, "/api/category/", token,
		fiber.Map{"name": "Child", "parentId": rootCat.ID})
	require.Equal(t, http.StatusCreated, child.Code)
	var childCat models.Category
	require.NoError(t, json.Unmarshal(child.Data, &childCat))

	// Parent has children
	env := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/category/%d", rootCat.ID), token, nil)
	assert.Equal(t, http.StatusConflict, env.Code)

	// Child referenced by a course
	require.NoError(t, database.Database.Db.Create(&models.Course{
		Title: "Algebra", CategoryID: childCat.ID, TeacherID: 1,
	}).Error)
	env = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/category/%d", childCat.ID), token, nil)
	assert.Equal(t, http.StatusConflict, env.Code)

	// Unreferenced leaf deletes fine
	leaf := doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Leaf"})
	require.Equal(t, http.StatusCreated, leaf.Code)
	var leafCat models.Category
	require.NoError(t, json.Unmarshal(leaf.Data, &leafCat))

	env = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/category/%d", leafCat.ID), token, nil)
	assert.Equal(t, http.StatusOK, env.Code)
}

func TestCategoryTreeOrdering(t *testing.T) {
	app := setupTest(t)
	token := adminToken(t)

	root := doRequest(t, app, http.MethodPost, "/api/category/", token, fiber.Map{"name": "Root"})
	require.Equal(t, http.StatusCreated, root.Code)
	var rootCat models.Category
	require.NoError(t, json.Unmarshal(root.Data, &rootCat))

	for _, name := range []string{"A", "B", "C"} {
		env := doRequest(t, app, http.MethodPost, "/api/category/", token,
			fiber.Map{"name": name, "parentId": rootCat.ID})
		require.Equal(t, http.StatusCreated, env.Code)
	}

	env := doRequest(t, app, http.MethodGet, "/api/category/tree", token, nil)
	require.Equal(t, http.StatusOK, env.Code)

	var tree []CategoryTree
	require.NoError(t, json.Unmarshal(env.Data, &tree))
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 3)
	assert.Equal(t, "A", tree[0].Children[0].Name)
	assert.Equal(t, "B", tree[0].Children[1].Name)
	assert.Equal(t, "C", tree[0].Children[2].Name)
}
