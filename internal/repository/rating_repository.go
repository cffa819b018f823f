package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 商品ごとの集計値
type RatingAggregate struct {
	ProductID int64
	Average   float64
	Count     int64
}

type RatingRepository interface {
	//(user, product)で1件に揃える
	Upsert(ctx context.Context, r model.Rating) (model.Rating, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.Rating, error)
	ListByProductID(ctx context.Context, productID int64, page int, limit int) ([]model.Rating, int64, error)
	//表示中の商品IDたちをまとめて集計
	AggregateByProductIDs(ctx context.Context, productIDs []int64) ([]RatingAggregate, error)
}
