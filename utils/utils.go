package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNo returns a collision-resistant order number
func GenerateOrderNo() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORDER_" + raw[:16]
}

// GenerateTradeNo returns a synthetic trade number for simulated settlements
func GenerateTradeNo() string {
	return fmt.Sprintf("MOCK_TRADE_%d", time.Now().UnixMilli())
}
