package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type OrderListQuery struct {
	Page   int
	Limit  int
	Status string
	//admin一覧でusername/email部分一致に引っかかったユーザーIDたち
	UserIDs []int64
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, q OrderListQuery) ([]model.Order, int64, error)
	ListAdmin(ctx context.Context, q OrderListQuery) ([]model.Order, int64, error)

	// 旧statusを条件にしたcompare-and-swap更新。
	// 他のリクエストに先を越されていたらfalse（行は触らない）
	UpdateStatusIf(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderItem, error)
}
