package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Page      int
	Limit     int
	Q         string
	SortBy    string // created_at / price / name / updated_at
	SortOrder string // asc / desc
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	//注文作成のバッチ解決用
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
