package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type BuyerGormRepository struct {
	db *gorm.DB
}

func NewBuyerGormRepository(db *gorm.DB) *BuyerGormRepository {
	return &BuyerGormRepository{db: db}
}

func (r *BuyerGormRepository) FindByID(ctx context.Context, userID int64) (model.Buyer, error) {
	var b model.Buyer
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&b).Error
	if isNotFound(err) {
		return model.Buyer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Buyer{}, err
	}
	return b, nil
}

func (r *BuyerGormRepository) Create(ctx context.Context, b model.Buyer) (model.Buyer, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.Buyer{}, err
	}
	return b, nil
}

func (r *BuyerGormRepository) Upsert(ctx context.Context, b model.Buyer) (model.Buyer, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "phone", "address_line1", "address_line2",
			"city", "province", "postal_code", "country", "updated_at",
		}),
	}).Create(&b).Error
	if err != nil {
		return model.Buyer{}, err
	}
	return b, nil
}
