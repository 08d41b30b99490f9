package authValidator

import (
	"eduapi/middleware"
	"eduapi/models"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// collectErrors converts validator failures into per-field messages
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
			case "oneof":
				errs[fe.Field()] = fmt.Sprintf("%s must be one of: %s!", fe.Field(), fe.Param())
			case "email":
				errs[fe.Field()] = fmt.Sprintf("%s must be a valid email address!", fe.Field())
			default:
				errs[fe.Field()] = fmt.Sprintf("%s is invalid!", fe.Field())
			}
		}
	} else {
		errs["request"] = "Invalid request body!"
	}
	return errs
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required,min=6"`
	Nickname string `json:"nickname" validate:"required,min=2"`
	Avatar   string `json:"avatar"`
	// Admin accounts are provisioned out of band, never via registration
	Role     string `json:"role" validate:"omitempty,oneof=STUDENT TEACHER"`
}

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		if reqData.Role == "" {
			reqData.Role = models.RoleStudent
		}
		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

type LoginRequest struct {
	ID       uint   `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

type UpdateUserRequest struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if reqData.Nickname == "" && reqData.Avatar == "" && reqData.Email == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "At least one field must be updated!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func UpdatePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdatePasswordRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		if reqData.OldPassword == reqData.NewPassword {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "New password must differ from the old password!", nil)
		}
		c.Locals("validatedPasswordUpdate", reqData)
		return c.Next()
	}
}

type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

func UserPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PageRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid query parameters!", nil)
		}
		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}
		c.Locals("validatedUserPage", reqData)
		return c.Next()
	}
}
