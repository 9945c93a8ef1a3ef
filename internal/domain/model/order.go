package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCOD          PaymentMethod = "cod"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// 注文。作成後はstatus系と配送日時以外は変えない。
type Order struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber        string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_number"`
	CustomerID         int64           `gorm:"not null;index" json:"customer_id"`
	Status             OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Subtotal           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	ShippingCost       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"shipping_cost"`
	TaxAmount          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"tax_amount"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	PaymentMethod      PaymentMethod   `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus      PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	ShippingAddress    string          `gorm:"type:text;not null" json:"shipping_address"`
	ShippingCity       string          `gorm:"type:varchar(255);not null" json:"shipping_city"`
	ShippingPostalCode string          `gorm:"type:varchar(20);not null" json:"shipping_postal_code"`
	ShippingProvince   string          `gorm:"type:varchar(255);not null" json:"shipping_province"`
	Notes              *string         `gorm:"type:text" json:"notes"`
	ShippedAt          *time.Time      `json:"shipped_at"`
	DeliveredAt        *time.Time      `json:"delivered_at"`
	CreatedAt          time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// 銀行振込で未入金なら振込案内を出す
func (o Order) NeedsPaymentInstructions() bool {
	return o.PaymentMethod == PaymentMethodBankTransfer && o.PaymentStatus == PaymentStatusPending
}
