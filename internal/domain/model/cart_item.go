package model

import "time"

// セッション単位のカート明細
// (session_id, product_id, product_variation) で1行。
type CartItem struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID        string    `gorm:"type:varchar(255);not null;index" json:"session_id"`
	CustomerID       *int64    `gorm:"index" json:"customer_id"`
	ProductID        int64     `gorm:"not null;index" json:"product_id"`
	Quantity         int64     `gorm:"not null" json:"quantity"`
	ProductVariation Variation `gorm:"type:text" json:"product_variation"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
