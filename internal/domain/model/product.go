package model

import "time"

// Product is a heating-oil grade with its current price per liter.
type Product struct {
	ID            int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string  `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name          string  `gorm:"type:varchar(255);not null" json:"name"`
	PricePerLiter float64 `gorm:"type:decimal(12,4);not null" json:"price_per_liter"`
	IsActive      bool    `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
