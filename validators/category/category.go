package categoryValidator

import (
	"eduapi/middleware"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func collectErrors(err error) map[string]string {
	errs := make(map[string]string)
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			switch fe.Tag() {
			case "required":
				errs[fe.Field()] = fmt.Sprintf("%s is required!", fe.Field())
			case "min":
				errs[fe.Field()] = fmt.Sprintf("%s must be at least %s characters long!", fe.Field(), fe.Param())
			default:
				errs[fe.Field()] = fmt.Sprintf("%s is invalid!", fe.Field())
			}
		}
	} else {
		errs["request"] = "Invalid request body!"
	}
	return errs
}

type AddCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	ParentID uint   `json:"parentId"`
}

func AddCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddCategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

func UpdateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedCategoryUpdate", reqData)
		return c.Next()
	}
}

// CategoryID validates the :id path parameter
func CategoryID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid category id!", nil)
		}
		c.Locals("categoryID", uint(id))
		return c.Next()
	}
}
