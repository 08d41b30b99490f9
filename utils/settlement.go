package utils

import (
	"eduapi/config"
	"eduapi/database"
	"eduapi/models"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// ScheduleSettlement detaches the simulated gateway settlement. The caller
// gets its payment payload immediately; the transition happens later.
func ScheduleSettlement(orderNo string) {
	delay := time.Duration(config.AppConfig.PaySettleDelaySec) * time.Second
	time.AfterFunc(delay, func() {
		if err := SettleOrder(orderNo); err != nil {
			log.Printf("[SETTLEMENT] Error settling order %s: %v", orderNo, err)
		}
	})
}

// SettleOrder marks a still-pending order as paid and records the pay log.
// The status flip is a conditional update: a concurrent cancel and settle
// race resolves to exactly one terminal state, whichever commits first.
func SettleOrder(orderNo string) error {
	db := database.Database.Db

	var order models.PayOrder
	if err := db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		return err
	}

	now := time.Now()
	result := db.Model(&models.PayOrder{}).
		Where("order_no = ? AND status = ?", orderNo, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":   models.OrderStatusPaid,
			"pay_time": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Order left PENDING_PAYMENT before the settlement fired
		log.Printf("[SETTLEMENT] Order %s no longer pending, skipping", orderNo)
		return nil
	}

	payLog := models.PayLog{
		OrderNo:     orderNo,
		TradeNo:     GenerateTradeNo(),
		PayPlatform: order.PayType,
		PayTime:     now,
	}
	if err := db.Create(&payLog).Error; err != nil {
		return err
	}
	log.Printf("[SETTLEMENT] Simulated payment success, order: %s", orderNo)

	notifySettlement(order, payLog)
	sendReceipt(order)
	return nil
}

// notifySettlement posts the settlement to the configured webhook, if any
func notifySettlement(order models.PayOrder, payLog models.PayLog) {
	notifyURL := config.AppConfig.PayNotifyURL
	if notifyURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"orderNo":  order.OrderNo,
			"tradeNo":  payLog.TradeNo,
			"status":   models.OrderStatusPaid,
			"totalFee": order.TotalFee,
			"payTime":  payLog.PayTime,
		}).
		Post(notifyURL)
	if err != nil {
		log.Printf("[SETTLEMENT] Webhook notify failed for %s: %v", order.OrderNo, err)
		return
	}
	if resp.IsError() {
		log.Printf("[SETTLEMENT] Webhook notify for %s returned %d", order.OrderNo, resp.StatusCode())
	}
}

// sendReceipt emails the buyer when an address can be resolved
func sendReceipt(order models.PayOrder) {
	db := database.Database.Db

	email := ""
	var student models.Student
	if err := db.Where("id = ?", order.UserID).First(&student).Error; err == nil {
		var user models.User
		if err := db.Where("id = ?", student.UserID).First(&user).Error; err == nil {
			email = user.Email
		}
	} else {
		var teacher models.Teacher
		if err := db.Where("id = ?", order.UserID).First(&teacher).Error; err == nil {
			var user models.User
			if err := db.Where("id = ?", teacher.UserID).First(&user).Error; err == nil {
				email = user.Email
			}
		}
	}

	if email == "" {
		return
	}
	if err := SendOrderPaidEmail(email, order.OrderNo, order.TotalFee); err != nil {
		log.Printf("[SETTLEMENT] Receipt email failed for %s: %v", order.OrderNo, err)
	}
}
