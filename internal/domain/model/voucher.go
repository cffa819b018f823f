package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeAmount     DiscountType = "AMOUNT"
)

// Voucherは注文の割引クーポン。
// used_countはusage_limitを超えない（PAID遷移時にだけ+1される）
type Voucher struct {
	ID            int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	DiscountType  DiscountType     `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"discount_value"`
	MinOrderValue *decimal.Decimal `gorm:"type:numeric(12,2)" json:"min_order_value"`
	StartAt       *time.Time       `json:"start_at"`
	EndAt         *time.Time       `json:"end_at"`
	UsageLimit    *int64           `json:"usage_limit"`
	UsedCount     int64            `gorm:"not null;default:0" json:"used_count"`
	Active        bool             `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
