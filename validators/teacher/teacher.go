package teacherValidator

import (
	"eduapi/middleware"

	"github.com/gofiber/fiber/v2"
)

type UpdateTeacherRequest struct {
	RealName     string `json:"realName"`
	Title        string `json:"title"`
	Introduction string `json:"introduction"`
	Nickname     string `json:"nickname"`
	Avatar       string `json:"avatar"`
}

func UpdateTeacher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateTeacherRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if reqData.RealName == "" && reqData.Title == "" && reqData.Introduction == "" &&
			reqData.Nickname == "" && reqData.Avatar == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "At least one field must be updated!", nil)
		}
		c.Locals("validatedTeacherUpdate", reqData)
		return c.Next()
	}
}
