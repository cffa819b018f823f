package model

import "time"

// Buyerは配送先などの購入者プロフィール。IDはUser.IDと同じ。
// 初回GETで空行を自動作成する。
type Buyer struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"type:varchar(100)" json:"full_name"`
	Phone        string    `gorm:"type:varchar(30)" json:"phone"`
	AddressLine1 string    `gorm:"type:varchar(255)" json:"address_line1"`
	AddressLine2 string    `gorm:"type:varchar(255)" json:"address_line2"`
	City         string    `gorm:"type:varchar(100)" json:"city"`
	Province     string    `gorm:"type:varchar(100)" json:"province"`
	PostalCode   string    `gorm:"type:varchar(20)" json:"postal_code"`
	Country      string    `gorm:"type:varchar(100)" json:"country"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
