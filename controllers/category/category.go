package categoryController

import (
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	categoryValidator "eduapi/validators/category"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// maxTreeDepth bounds the recursive walk so cyclic parent data (possible
// only through manual DB edits) cannot hang the request.
const maxTreeDepth = 32

// AddCategory creates a category under a parent. Admin only (route-gated).
func AddCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*categoryValidator.AddCategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Parent must exist when not a root category
	if reqData.ParentID != 0 {
		var parent models.Category
		if err := db.Where("id = ?", reqData.ParentID).First(&parent).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, "Parent category not found!", nil)
		}
	}

	// Sibling names must be unique
	var existing models.Category
	if err := db.Where("name = ? AND parent_id = ?", reqData.Name, reqData.ParentID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Category name already exists!", nil)
	}

	// sort = max(sibling sort) + 1, or 1 if none
	var maxSort int
	db.Model(&models.Category{}).Where("parent_id = ?", reqData.ParentID).
		Select("COALESCE(MAX(sort), 0)").Scan(&maxSort)

	category := models.Category{
		Name:     reqData.Name,
		ParentID: reqData.ParentID,
		Sort:     maxSort + 1,
	}

	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Category created successfully.", category)
}

// UpdateCategory renames a category. Admin only (route-gated).
func UpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(uint)

	reqData, ok := c.Locals("validatedCategoryUpdate").(*categoryValidator.UpdateCategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Category not found!", nil)
	}

	// New name must stay unique among siblings, excluding itself
	var existing models.Category
	if err := db.Where("name = ? AND parent_id = ? AND id <> ?", reqData.Name, category.ParentID, categoryID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Category name already exists!", nil)
	}

	category.Name = reqData.Name
	if err := db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Category updated successfully.", category)
}

// DeleteCategory removes a childless, unreferenced category. Admin only.
func DeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(uint)

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Category not found!", nil)
	}

	var courseCount int64
	db.Model(&models.Course{}).Where("category_id = ?", categoryID).Count(&courseCount)
	if courseCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Category is referenced by courses and cannot be deleted!", nil)
	}

	var childCount int64
	db.Model(&models.Category{}).Where("parent_id = ?", categoryID).Count(&childCount)
	if childCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Category has child categories and cannot be deleted!", nil)
	}

	if err := db.Delete(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Category deleted successfully.", nil)
}

// CategoryTree is a category with its recursively attached children
type CategoryTree struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	ParentID uint           `json:"parentId"`
	Sort     int            `json:"sort"`
	Children []CategoryTree `json:"children"`
}

// ListCategoryTree composes the whole forest from the roots down
func ListCategoryTree(c *fiber.Ctx) error {
	tree := buildTree(database.Database.Db, 0, 0)
	return middleware.JsonResponse(c, fiber.StatusOK, "Category tree fetched successfully.", tree)
}

func buildTree(db *gorm.DB, parentID uint, depth int) []CategoryTree {
	if depth >= maxTreeDepth {
		return []CategoryTree{}
	}

	var categories []models.Category
	if err := db.Where("parent_id = ?", parentID).Order("sort asc").Find(&categories).Error; err != nil {
		log.Printf("Error fetching categories under %d: %v", parentID, err)
		return []CategoryTree{}
	}

	tree := make([]CategoryTree, 0, len(categories))
	for _, cat := range categories {
		tree = append(tree, CategoryTree{
			ID:       cat.ID,
			Name:     cat.Name,
			ParentID: cat.ParentID,
			Sort:     cat.Sort,
			Children: buildTree(db, cat.ID, depth+1),
		})
	}
	return tree
}
