package utils

import (
	"eduapi/config"
	"eduapi/database"
	"eduapi/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeOrderExpiryScheduler sets up the pending-order expiry sweeper
func InitializeOrderExpiryScheduler() {
	log.Println("[ORDER-SCHEDULER] Initializing order expiry scheduler...")

	c := cron.New()

	c.AddFunc("@every 1m", func() {
		ExpirePendingOrders()
	})

	c.Start()
	log.Println("[ORDER-SCHEDULER] Order expiry scheduler started - runs every minute")
}

// ExpirePendingOrders marks stale PENDING_PAYMENT orders as EXPIRED. The
// update is conditional on the current status, so an order settled or
// cancelled in the meantime is left alone.
func ExpirePendingOrders() {
	db := database.Database.Db
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.OrderExpireMinutes) * time.Minute)

	result := db.Model(&models.PayOrder{}).
		Where("status = ? AND created_at < ?", models.OrderStatusPending, cutoff).
		Update("status", models.OrderStatusExpired)

	if result.Error != nil {
		log.Printf("[ORDER-SCHEDULER] Error expiring orders: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[ORDER-SCHEDULER] Expired %d stale pending orders", result.RowsAffected)
	}
}
