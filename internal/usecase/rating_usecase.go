package usecase

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type RatingUsecase struct {
	ratings  repo.RatingRepository
	products repo.ProductRepository
	users    repo.UserRepository
}

func NewRatingUsecase(ratings repo.RatingRepository, products repo.ProductRepository, users repo.UserRepository) *RatingUsecase {
	return &RatingUsecase{ratings: ratings, products: products, users: users}
}

type UpsertRatingInput struct {
	Value   int
	Comment *string
}

type RatingOutput struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Value     int       `json:"value"`
	Comment   *string   `json:"comment"`
	Username  string    `json:"username,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Upsertは同じ(user, product)の2回目以降を上書きにする
func (u *RatingUsecase) Upsert(ctx context.Context, userID int64, productID int64, in UpsertRatingInput) (RatingOutput, error) {
	if in.Value < 1 || in.Value > 5 {
		return RatingOutput{}, errValidation("value must be 1..5")
	}

	//商品が存在しないならrating不可
	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return RatingOutput{}, errNotFound("product not found")
		}
		return RatingOutput{}, errInternal()
	}

	saved, err := u.ratings.Upsert(ctx, model.Rating{
		UserID:    userID,
		ProductID: productID,
		Value:     in.Value,
		Comment:   in.Comment,
	})
	if err != nil {
		return RatingOutput{}, errInternal()
	}
	return toRatingOutput(saved), nil
}

type RatingListOutput struct {
	Data []RatingOutput `json:"data"`
	Meta struct {
		PageMeta
		Average *float64 `json:"average"`
		Count   int64    `json:"count"`
	} `json:"meta"`
}

func (u *RatingUsecase) ListByProduct(ctx context.Context, productID int64, page int, limit int) (RatingListOutput, error) {
	page = normalizePage(page)
	limit = normalizeLimit(limit)

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return RatingListOutput{}, errNotFound("product not found")
		}
		return RatingListOutput{}, errInternal()
	}

	items, total, err := u.ratings.ListByProductID(ctx, productID, page, limit)
	if err != nil {
		return RatingListOutput{}, errInternal()
	}

	//投稿ユーザー名もまとめて解決
	userIDs := make([]int64, 0, len(items))
	for _, r := range items {
		userIDs = append(userIDs, r.UserID)
	}
	users, err := u.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return RatingListOutput{}, errInternal()
	}
	nameByID := make(map[int64]string, len(users))
	for _, usr := range users {
		nameByID[usr.ID] = usr.Username
	}

	var out RatingListOutput
	out.Data = make([]RatingOutput, 0, len(items))
	for _, r := range items {
		ro := toRatingOutput(r)
		ro.Username = nameByID[r.UserID]
		out.Data = append(out.Data, ro)
	}
	out.Meta.PageMeta = newPageMeta(total, page, limit)

	aggs, err := u.ratings.AggregateByProductIDs(ctx, []int64{productID})
	if err != nil {
		return RatingListOutput{}, errInternal()
	}
	if len(aggs) > 0 {
		avg := roundAvg(aggs[0].Average)
		out.Meta.Average = &avg
		out.Meta.Count = aggs[0].Count
	}
	return out, nil
}

func (u *RatingUsecase) GetMine(ctx context.Context, userID int64, productID int64) (RatingOutput, error) {
	r, err := u.ratings.FindByUserAndProduct(ctx, userID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return RatingOutput{}, errNotFound("you have not rated this product")
	}
	if err != nil {
		return RatingOutput{}, errInternal()
	}
	return toRatingOutput(r), nil
}

func toRatingOutput(r model.Rating) RatingOutput {
	return RatingOutput{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Value:     r.Value,
		Comment:   r.Comment,
		UpdatedAt: r.UpdatedAt,
	}
}
