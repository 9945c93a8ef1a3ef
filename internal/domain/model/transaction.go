package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

const TransactionCategorySales = "Sales"

// 参照先の種類（注文 / 仕入れ）
type ReferenceKind string

const (
	ReferenceKindOrder    ReferenceKind = "order"
	ReferenceKindPurchase ReferenceKind = "purchase"
)

// 元になった注文・仕入れへの参照。FKは張らない。
type LedgerReference struct {
	Kind ReferenceKind `gorm:"column:reference_type;type:varchar(50);index:idx_transactions_reference,priority:1" json:"kind"`
	ID   int64         `gorm:"column:reference_id;index:idx_transactions_reference,priority:2" json:"id"`
}

func OrderReference(orderID int64) LedgerReference {
	return LedgerReference{Kind: ReferenceKindOrder, ID: orderID}
}

func PurchaseReference(purchaseID int64) LedgerReference {
	return LedgerReference{Kind: ReferenceKindPurchase, ID: purchaseID}
}

// 入出金台帳。追記のみ。
type Transaction struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionNumber string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"transaction_number"`
	Type              TransactionType `gorm:"type:varchar(20);not null;index" json:"type"`
	Category          string          `gorm:"type:varchar(255);not null;index" json:"category"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description       string          `gorm:"type:text;not null" json:"description"`
	TransactionDate   time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
	Reference         LedgerReference `gorm:"embedded" json:"reference"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
