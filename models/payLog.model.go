package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PayLog is an append-only audit trail, one row per settlement event.
type PayLog struct {
	gorm.Model
	OrderNo         string         `json:"orderNo" gorm:"index;not null"`
	TradeNo         string         `json:"tradeNo" gorm:"not null"`
	PayPlatform     PayType        `json:"payPlatform" gorm:"type:varchar(20)"`
	PayTime         time.Time      `json:"payTime"`
	CallbackContent datatypes.JSON `json:"callbackContent"`
}
