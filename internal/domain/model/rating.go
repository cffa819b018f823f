package model

import "time"

// Ratingは1ユーザー1商品につき1件（upsert）
type Rating struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_ratings_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_ratings_user_product;index" json:"product_id"`
	Value     int       `gorm:"not null" json:"value"`
	Comment   *string   `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
