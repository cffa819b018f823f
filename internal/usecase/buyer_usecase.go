package usecase

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type BuyerUsecase struct {
	buyers repo.BuyerRepository
}

func NewBuyerUsecase(buyers repo.BuyerRepository) *BuyerUsecase {
	return &BuyerUsecase{buyers: buyers}
}

// GetMyProfileは無ければ空プロフィールを自動作成して返す
func (u *BuyerUsecase) GetMyProfile(ctx context.Context, userID int64) (model.Buyer, error) {
	b, err := u.buyers.FindByID(ctx, userID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Buyer{}, errInternal()
	}

	created, err := u.buyers.Create(ctx, model.Buyer{ID: userID})
	if err != nil {
		return model.Buyer{}, errInternal()
	}
	return created, nil
}

type UpsertBuyerInput struct {
	FullName     *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	Province     *string
	PostalCode   *string
	Country      *string
}

// UpsertMyProfileは許可フィールドだけ受け付けて上書きする
func (u *BuyerUsecase) UpsertMyProfile(ctx context.Context, userID int64, in UpsertBuyerInput) (model.Buyer, error) {
	b, err := u.buyers.FindByID(ctx, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return model.Buyer{}, errInternal()
	}
	b.ID = userID

	if in.FullName != nil {
		b.FullName = *in.FullName
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	if in.AddressLine1 != nil {
		b.AddressLine1 = *in.AddressLine1
	}
	if in.AddressLine2 != nil {
		b.AddressLine2 = *in.AddressLine2
	}
	if in.City != nil {
		b.City = *in.City
	}
	if in.Province != nil {
		b.Province = *in.Province
	}
	if in.PostalCode != nil {
		b.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		b.Country = *in.Country
	}

	saved, err := u.buyers.Upsert(ctx, b)
	if err != nil {
		return model.Buyer{}, errInternal()
	}
	return saved, nil
}
