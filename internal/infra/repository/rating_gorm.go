package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

// (user_id, product_id)でON CONFLICT更新
func (r *RatingGormRepository) Upsert(ctx context.Context, rating model.Rating) (model.Rating, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "comment", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return model.Rating{}, err
	}

	//ON CONFLICT時はIDが埋まらないことがあるので読み直す
	var saved model.Rating
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", rating.UserID, rating.ProductID).
		First(&saved).Error
	if err != nil {
		return model.Rating{}, err
	}
	return saved, nil
}

func (r *RatingGormRepository) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&rating).Error
	if isNotFound(err) {
		return model.Rating{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Rating{}, err
	}
	return rating, nil
}

func (r *RatingGormRepository) ListByProductID(ctx context.Context, productID int64, page int, limit int) ([]model.Rating, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Rating{}).Where("product_id = ?", productID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Rating{}, 0, err
	}

	var items []model.Rating
	offset := (page - 1) * limit
	err := tx.Order("updated_at desc").Limit(limit).Offset(offset).Find(&items).Error
	if err != nil {
		return []model.Rating{}, 0, err
	}
	return items, total, nil
}

func (r *RatingGormRepository) AggregateByProductIDs(ctx context.Context, productIDs []int64) ([]repo.RatingAggregate, error) {
	if len(productIDs) == 0 {
		return []repo.RatingAggregate{}, nil
	}
	var aggs []repo.RatingAggregate
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("product_id, AVG(value) AS average, COUNT(*) AS count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, err
	}
	return aggs, nil
}
