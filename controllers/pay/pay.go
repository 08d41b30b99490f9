package payController

import (
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	"eduapi/utils"
	payValidator "eduapi/validators/pay"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// resolveProfileID maps the authenticated account to its role-specific
// profile row. Orders belong to the profile, not the account.
func resolveProfileID(db *gorm.DB, userID uint, role string) (uint, error) {
	switch role {
	case models.RoleStudent:
		var student models.Student
		if err := db.Where("user_id = ?", userID).First(&student).Error; err != nil {
			return 0, err
		}
		return student.ID, nil
	case models.RoleTeacher:
		var teacher models.Teacher
		if err := db.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
			return 0, err
		}
		return teacher.ID, nil
	default:
		return 0, fmt.Errorf("role %s cannot place orders", role)
	}
}

// CreateOrder opens a purchase order for a course. Creation is idempotent:
// an existing pending order for the same course is returned as-is.
func CreateOrder(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	role := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedOrder").(*payValidator.CreateOrderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	profileID, err := resolveProfileID(db, userId, role)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "No purchasing profile for this account!", nil)
	}

	var existing models.PayOrder
	if err := db.Where("user_id = ? AND course_id = ? AND status = ?",
		profileID, reqData.CourseID, models.OrderStatusPending).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, "Pending order already exists.", existing)
	}

	order := models.PayOrder{
		OrderNo:  utils.GenerateOrderNo(),
		UserID:   profileID,
		CourseID: reqData.CourseID,
		TotalFee: course.Price,
		PayType:  models.PayType(reqData.PayType),
		Status:   models.OrderStatusPending,
	}

	if err := db.Create(&order).Error; err != nil {
		log.Printf("Error creating order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to create order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Order created successfully.", order)
}

// CancelOrder flips a pending order to cancelled. The conditional update
// loses cleanly against a settlement that already committed.
func CancelOrder(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	orderNo := c.Locals("orderNo").(string)

	db := database.Database.Db

	var order models.PayOrder
	if err := db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Order not found!", nil)
	}

	profileID, err := resolveProfileID(db, userId, role)
	if err != nil || order.UserID != profileID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, "Order does not belong to this account!", nil)
	}

	result := db.Model(&models.PayOrder{}).
		Where("order_no = ? AND status = ?", orderNo, models.OrderStatusPending).
		Update("status", models.OrderStatusCancelled)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to cancel order!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Order is not pending and cannot be cancelled!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Order cancelled successfully.", nil)
}

// CreatePay starts the simulated gateway flow for a pending order and
// schedules its settlement.
func CreatePay(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPay").(*payValidator.CreatePayRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var order models.PayOrder
	if err := db.Where("order_no = ?", reqData.OrderNo).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Order not found!", nil)
	}

	if order.Status != models.OrderStatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Order is not awaiting payment!", nil)
	}

	if order.PayType != models.PayType(reqData.PayType) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Payment channel does not match the order!", nil)
	}

	var payURL string
	switch order.PayType {
	case models.PayTypeWeChat:
		payURL = fmt.Sprintf("weixin://wxpay/bizpayurl?pr=%s", order.OrderNo)
	case models.PayTypeAlipay:
		payURL = fmt.Sprintf("https://qr.alipay.com/%s", order.OrderNo)
	}

	utils.ScheduleSettlement(order.OrderNo)

	return middleware.JsonResponse(c, fiber.StatusOK, "Payment created successfully.", fiber.Map{
		"orderNo":  order.OrderNo,
		"payType":  order.PayType,
		"totalFee": order.TotalFee,
		"payUrl":   payURL,
	})
}

// Callback receives the gateway notification and marks the order paid.
// The transition is applied unconditionally, trusting the gateway.
func Callback(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCallback").(*payValidator.CallbackRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var order models.PayOrder
	if err := db.Where("order_no = ?", reqData.OrderNo).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Order not found!", nil)
	}

	now := time.Now()
	if err := db.Model(&order).Updates(map[string]interface{}{
		"status":   models.OrderStatusPaid,
		"pay_time": now,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to process callback!", nil)
	}

	content := reqData.CallbackContent
	if content == "" {
		content = "{}"
	}
	payLog := models.PayLog{
		OrderNo:         reqData.OrderNo,
		TradeNo:         reqData.TradeNo,
		PayPlatform:     models.PayType(reqData.PayPlatform),
		PayTime:         now,
		CallbackContent: datatypes.JSON(content),
	}
	if err := db.Create(&payLog).Error; err != nil {
		log.Printf("Error recording pay log for %s: %v", reqData.OrderNo, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Callback processed successfully.", nil)
}

// OrderStatus returns the current status of one of the caller's orders
func OrderStatus(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	orderNo := c.Locals("orderNo").(string)

	db := database.Database.Db

	var order models.PayOrder
	if err := db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Order not found!", nil)
	}

	profileID, err := resolveProfileID(db, userId, role)
	if err != nil || order.UserID != profileID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, "Order does not belong to this account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Order status fetched successfully.", fiber.Map{
		"orderNo": order.OrderNo,
		"status":  order.Status,
		"payTime": order.PayTime,
	})
}

// ListOrders pages the caller's orders, newest first
func ListOrders(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	role := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedOrderList").(*payValidator.OrderListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	profileID, err := resolveProfileID(db, userId, role)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "No purchasing profile for this account!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	query := db.Model(&models.PayOrder{}).Where("user_id = ?", profileID)

	var total int64
	query.Count(&total)

	var orders []models.PayOrder
	if err := query.Offset(offset).Limit(reqData.Limit).Order("created_at desc").Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Orders fetched successfully.", fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}
