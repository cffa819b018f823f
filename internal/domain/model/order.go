package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// ParseOrderStatusは宣言済みのステータスだけ通す
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted, OrderStatusCanceled:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

// total = subtotal - discount（どちらも2桁丸め済み）
type Order struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64           `gorm:"not null;index" json:"user_id"`
	Status    OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Discount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	VoucherID *int64          `gorm:"index" json:"voucher_id"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
