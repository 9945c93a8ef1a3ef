package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID             int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID     int64               `gorm:"not null;index" json:"category_id"`
	Name           string              `gorm:"type:varchar(255);not null" json:"name"`
	Slug           string              `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description    string              `gorm:"type:text;not null" json:"description"`
	Price          decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock          int64               `gorm:"not null" json:"stock"`
	MinStock       int64               `gorm:"not null" json:"min_stock"`
	SKU            string              `gorm:"column:sku;type:varchar(255);not null;uniqueIndex" json:"sku"`
	Images         StringList          `gorm:"type:text" json:"images"`
	Variations     VariationOptions    `gorm:"type:text" json:"variations"`
	Weight         decimal.NullDecimal `gorm:"type:numeric(8,2)" json:"weight"`
	ShippingOrigin *string             `gorm:"type:varchar(255)" json:"shipping_origin"`
	IsActive       bool                `gorm:"not null;index" json:"is_active"`
	IsFeatured     bool                `gorm:"not null;default:false;index" json:"is_featured"`
	CreatedAt      time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// 在庫が最低在庫以下か
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
