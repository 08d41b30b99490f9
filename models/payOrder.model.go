package models

import (
	"time"

	"gorm.io/gorm"
)

// PayType defines the requested payment channel
type PayType string

const (
	PayTypeWeChat PayType = "WECHAT"
	PayTypeAlipay PayType = "ALIPAY"
)

// OrderStatus defines the payment state of an order. Transitions out of
// PENDING_PAYMENT are one-way; no transition leaves a terminal state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusExpired   OrderStatus = "EXPIRED"
)

// PayOrder is a purchase intent for one course by one profile (student or
// teacher id, depending on the buyer's role).
type PayOrder struct {
	gorm.Model
	OrderNo  string      `json:"orderNo" gorm:"uniqueIndex;not null"`
	UserID   uint        `json:"userId" gorm:"index;not null"`
	CourseID uint        `json:"courseId" gorm:"index;not null"`
	TotalFee int64       `json:"totalFee" gorm:"not null"` // cents, course price snapshot
	PayType  PayType     `json:"payType" gorm:"type:varchar(20);not null"`
	Status   OrderStatus `json:"status" gorm:"type:varchar(20);default:'PENDING_PAYMENT'"`
	PayTime  *time.Time  `json:"payTime"`
}
