package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type BuyerRepository interface {
	FindByID(ctx context.Context, userID int64) (model.Buyer, error)
	//なければ作る、あれば更新
	Upsert(ctx context.Context, b model.Buyer) (model.Buyer, error)
	Create(ctx context.Context, b model.Buyer) (model.Buyer, error)
}
