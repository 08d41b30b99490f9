package payValidator

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
			case "oneof":
				errs[fe.Field()] = fmt.Sprintf("%s must be one of: %s!", fe.Field(), fe.Param())
			default:
				errs[fe.Field()] = fmt.Sprintf("%s is invalid!", fe.Field())
			}
		}
	} else {
		errs["request"] = "Invalid request body!"
	}
	return errs
}

type CreateOrderRequest struct {
	CourseID uint   `json:"courseId" validate:"required"`
	PayType  string `json:"payType" validate:"required,oneof=WECHAT ALIPAY"`
}

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateOrderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedOrder", reqData)
		return c.Next()
	}
}

type CreatePayRequest struct {
	OrderNo string `json:"orderNo" validate:"required"`
	PayType string `json:"payType" validate:"required,oneof=WECHAT ALIPAY"`
}

func CreatePay() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreatePayRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedPay", reqData)
		return c.Next()
	}
}

type CallbackRequest struct {
	OrderNo         string `json:"orderNo" validate:"required"`
	TradeNo         string `json:"tradeNo" validate:"required"`
	PayPlatform     string `json:"payPlatform" validate:"required,oneof=WECHAT ALIPAY"`
	CallbackContent string `json:"callbackContent"`
}

func Callback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CallbackRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, collectErrors(err))
		}
		c.Locals("validatedCallback", reqData)
		return c.Next()
	}
}

// OrderNo validates the :orderNo path parameter
func OrderNo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderNo := c.Params("orderNo")
		if orderNo == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid order number!", nil)
		}
		c.Locals("orderNo", orderNo)
		return c.Next()
	}
}

type OrderListRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

func OrderList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(OrderListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid query parameters!", nil)
		}
		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}
		c.Locals("validatedOrderList", reqData)
		return c.Next()
	}
}
