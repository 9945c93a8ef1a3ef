package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

type Supplier struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null;index" json:"name"`
	ContactPerson *string        `gorm:"type:varchar(255)" json:"contact_person"`
	Email         string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone         *string        `gorm:"type:varchar(255)" json:"phone"`
	Address       *string        `gorm:"type:text" json:"address"`
	City          *string        `gorm:"type:varchar(255)" json:"city"`
	PostalCode    *string        `gorm:"type:varchar(255)" json:"postal_code"`
	Province      *string        `gorm:"type:varchar(255)" json:"province"`
	Notes         *string        `gorm:"type:text" json:"notes"`
	Status        SupplierStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusOrdered   PurchaseStatus = "ordered"
	PurchaseStatusReceived  PurchaseStatus = "received"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// 仕入れ。台帳のexpense行から参照される。
type Purchase struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PurchaseNumber string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"purchase_number"`
	SupplierID     int64           `gorm:"not null;index" json:"supplier_id"`
	PurchaseDate   time.Time       `gorm:"type:date;not null;index" json:"purchase_date"`
	Status         PurchaseStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"tax_amount"`
	ShippingCost   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"shipping_cost"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Notes          *string         `gorm:"type:text" json:"notes"`
	ReceivedAt     *time.Time      `json:"received_at"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Supplier *Supplier      `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE" json:"supplier,omitempty"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// 仕入れ明細（原価）
type PurchaseItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PurchaseID int64           `gorm:"not null;index" json:"purchase_id"`
	ProductID  int64           `gorm:"not null;index" json:"product_id"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	UnitCost   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_cost"`
	TotalCost  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_cost"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
