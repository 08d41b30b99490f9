package studentValidator

import (
	"eduapi/middleware"

	"github.com/gofiber/fiber/v2"
)

type UpdateStudentRequest struct {
	RealName     string `json:"realName"`
	School       string `json:"school"`
	Grade        string `json:"grade"`
	Introduction string `json:"introduction"`
	Nickname     string `json:"nickname"`
	Avatar       string `json:"avatar"`
}

func UpdateStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateStudentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if reqData.RealName == "" && reqData.School == "" && reqData.Grade == "" &&
			reqData.Introduction == "" && reqData.Nickname == "" && reqData.Avatar == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "At least one field must be updated!", nil)
		}
		c.Locals("validatedStudentUpdate", reqData)
		return c.Next()
	}
}

// EnrollCourseID validates the :courseId path parameter
func EnrollCourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("courseId")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid course id!", nil)
		}
		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

type ListRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

func SelectedCourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid query parameters!", nil)
		}
		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}
		c.Locals("validatedSelectedList", reqData)
		return c.Next()
	}
}
