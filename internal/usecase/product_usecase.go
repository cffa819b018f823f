package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ProductUsecase struct {
	products repo.ProductRepository
	ratings  repo.RatingRepository
	users    repo.UserRepository
}

func NewProductUsecase(products repo.ProductRepository, ratings repo.RatingRepository, users repo.UserRepository) *ProductUsecase {
	return &ProductUsecase{products: products, ratings: ratings, users: users}
}

type ListProductsInput struct {
	Page      int
	Limit     int
	Q         string
	SortBy    string
	SortOrder string
}

type ProductOwnerOutput struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type ProductOutput struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	User        *ProductOwnerOutput `json:"user,omitempty"`
	AvgRating   *float64        `json:"avg_rating"`
	RatingCount int64           `json:"rating_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProductListOutput struct {
	Data []ProductOutput `json:"data"`
	Meta PageMeta        `json:"meta"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	page := normalizePage(in.Page)
	limit := normalizeLimit(in.Limit)

	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:      page,
		Limit:     limit,
		Q:         in.Q,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
	})
	if err != nil {
		return ProductListOutput{}, errInternal()
	}

	//表示中ページの分だけratingを集計
	ids := make([]int64, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	aggs, err := u.ratings.AggregateByProductIDs(ctx, ids)
	if err != nil {
		return ProductListOutput{}, errInternal()
	}
	aggMap := make(map[int64]repo.RatingAggregate, len(aggs))
	for _, a := range aggs {
		aggMap[a.ProductID] = a
	}

	//出品ユーザーもまとめて解決
	ownerIDs := make([]int64, 0, len(items))
	for _, p := range items {
		ownerIDs = append(ownerIDs, p.UserID)
	}
	owners, err := u.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return ProductListOutput{}, errInternal()
	}
	ownerMap := make(map[int64]model.User, len(owners))
	for _, o := range owners {
		ownerMap[o.ID] = o
	}

	data := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		out := toProductOutput(p)
		if o, ok := ownerMap[p.UserID]; ok {
			out.User = &ProductOwnerOutput{ID: o.ID, Username: o.Username}
		}
		if a, ok := aggMap[p.ID]; ok {
			avg := roundAvg(a.Average)
			out.AvgRating = &avg
			out.RatingCount = a.Count
		}
		data = append(data, out)
	}

	return ProductListOutput{
		Data: data,
		Meta: newPageMeta(total, page, limit),
	}, nil
}

func (u *ProductUsecase) GetDetail(ctx context.Context, id int64) (ProductOutput, error) {
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, errNotFound("product not found")
	}
	if err != nil {
		return ProductOutput{}, errInternal()
	}

	out := toProductOutput(p)

	if owner, err := u.users.FindByID(ctx, p.UserID); err == nil {
		out.User = &ProductOwnerOutput{ID: owner.ID, Username: owner.Username}
	}

	aggs, err := u.ratings.AggregateByProductIDs(ctx, []int64{id})
	if err != nil {
		return ProductOutput{}, errInternal()
	}
	if len(aggs) > 0 {
		avg := roundAvg(aggs[0].Average)
		out.AvgRating = &avg
		out.RatingCount = aggs[0].Count
	}
	return out, nil
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
}

func (u *ProductUsecase) Create(ctx context.Context, userID int64, in CreateProductInput) (ProductOutput, error) {
	if in.Name == "" || in.Price == nil {
		return ProductOutput{}, errValidation("name and price are required")
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       round2(*in.Price),
		UserID:      userID,
	})
	if err != nil {
		return ProductOutput{}, errInternal()
	}
	return toProductOutput(p), nil
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in UpdateProductInput) (ProductOutput, error) {
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, errNotFound("product not found")
	}
	if err != nil {
		return ProductOutput{}, errInternal()
	}

	//指定されたフィールドだけ上書き
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = round2(*in.Price)
	}

	if err := u.products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductOutput{}, errNotFound("product not found")
		}
		return ProductOutput{}, errInternal()
	}
	return toProductOutput(p), nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	err := u.products.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("product not found")
	}
	if err != nil {
		return errInternal()
	}
	return nil
}

// 平均は2桁に丸めて返す
func roundAvg(v float64) float64 {
	return math.Round(v*100) / 100
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
