package courseValidator

import (
	"eduapi/middleware"
	"errors"
	"fmt"
	"time"

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
			case "gte":
				errs[fe.Field()] = fmt.Sprintf("%s must not be negative!", fe.Field())
			default:
				errs[fe.Field()] = fmt.Sprintf("%s is invalid!", fe.Field())
			}
		}
	} else {
		errs["request"] = "Invalid request body!"
	}
	return errs
}

type AddCourseRequest struct {
	Title       string     `json:"title" validate:"required,min=3"`
	Cover       string     `json:"cover"`
	CategoryID  uint       `json:"categoryId" validate:"required"`
	Price       int64      `json:"price" validate:"gte=0"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

func AddCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

type UpdateCourseRequest struct {
	Title       string     `json:"title"`
	Cover       string     `json:"cover"`
	CategoryID  uint       `json:"categoryId"`
	Price       *int64     `json:"price" validate:"omitempty,gte=0"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED OFFLINE"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

type PageRequest struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	CategoryID uint   `query:"categoryId"`
	Title      string `query:"title"`
}

func CoursePage() fiber.Handler {
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
		c.Locals("validatedCoursePage", reqData)
		return c.Next()
	}
}

// CourseID validates the :id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid course id!", nil)
		}
		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

type AddChapterRequest struct {
	CourseID uint   `json:"courseId" validate:"required"`
	Title    string `json:"title" validate:"required,min=1"`
}

func AddChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddChapterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

type UpdateChapterRequest struct {
	Title string `json:"title" validate:"required,min=1"`
}

func UpdateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateChapterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedChapterUpdate", reqData)
		return c.Next()
	}
}

type AddVideoRequest struct {
	ChapterID uint   `json:"chapterId" validate:"required"`
	Title     string `json:"title" validate:"required,min=1"`
	VideoURL  string `json:"videoUrl"`
	Duration  int64  `json:"duration" validate:"gte=0"`
	IsFree    bool   `json:"isFree"`
}

func AddVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddVideoRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

type UpdateVideoRequest struct {
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
	Duration *int64 `json:"duration" validate:"omitempty,gte=0"`
	IsFree   *bool  `json:"isFree"`
}

func UpdateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateVideoRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedVideoUpdate", reqData)
		return c.Next()
	}
}
