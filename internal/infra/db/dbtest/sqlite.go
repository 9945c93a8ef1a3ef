// Package dbtest はテスト用のsqliteインメモリDBを用意する。
package dbtest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	"github.com/appdotbuilder/souvia-ecommerce/internal/infra/db"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open はテストごとに別のインメモリDBを開き、マイグレーション済みで返す。
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)))
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// 1本に固定（インメモリDBを閉じさせない）
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(conn))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func MustCategory(t *testing.T, conn *gorm.DB, name string, slug string) model.Category {
	t.Helper()
	c := model.Category{Name: name, Slug: slug, Description: name, IsActive: true}
	require.NoError(t, conn.Create(&c).Error)
	return c
}

// ProductOption で既定値を上書きする
type ProductOption func(p *model.Product)

func WithStock(stock int64, minStock int64) ProductOption {
	return func(p *model.Product) {
		p.Stock = stock
		p.MinStock = minStock
	}
}

func Inactive() ProductOption {
	return func(p *model.Product) { p.IsActive = false }
}

func Featured() ProductOption {
	return func(p *model.Product) { p.IsFeatured = true }
}

func CreatedAt(at time.Time) ProductOption {
	return func(p *model.Product) { p.CreatedAt = at }
}

func MustProduct(t *testing.T, conn *gorm.DB, categoryID int64, slug string, price string, opts ...ProductOption) model.Product {
	t.Helper()
	p := model.Product{
		CategoryID:  categoryID,
		Name:        strings.ToUpper(slug[:1]) + slug[1:],
		Slug:        slug,
		Description: "desc " + slug,
		Price:       decimal.RequireFromString(price),
		Stock:       10,
		MinStock:    2,
		SKU:         "SKU-" + strings.ToUpper(slug),
		IsActive:    true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	require.NoError(t, conn.Create(&p).Error)
	return p
}

func MustCustomer(t *testing.T, conn *gorm.DB, name string, email string) model.Customer {
	t.Helper()
	c := model.Customer{Name: name, Email: email, Phone: "0800", Status: model.CustomerStatusActive}
	require.NoError(t, conn.Create(&c).Error)
	return c
}

// 注文を1件（明細付きで）作る
func MustOrder(t *testing.T, conn *gorm.DB, customerID int64, number string, paid model.PaymentStatus, createdAt time.Time, items ...model.OrderItem) model.Order {
	t.Helper()
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	o := model.Order{
		OrderNumber:        number,
		CustomerID:         customerID,
		Status:             model.OrderStatusPending,
		Subtotal:           total,
		ShippingCost:       decimal.Zero,
		TaxAmount:          decimal.Zero,
		TotalAmount:        total,
		PaymentMethod:      model.PaymentMethodCOD,
		PaymentStatus:      paid,
		ShippingAddress:    "Jl. Mawar 1",
		ShippingCity:       "Bandung",
		ShippingPostalCode: "40111",
		ShippingProvince:   "Jawa Barat",
		CreatedAt:          createdAt,
	}
	require.NoError(t, conn.Omit("Items", "Customer").Create(&o).Error)
	for i := range items {
		items[i].OrderID = o.ID
	}
	if len(items) > 0 {
		require.NoError(t, conn.Omit("Product").Create(&items).Error)
	}
	o.Items = items
	return o
}

func Item(productID int64, qty int64, unit string) model.OrderItem {
	price := decimal.RequireFromString(unit)
	return model.OrderItem{
		ProductID:  productID,
		Quantity:   qty,
		UnitPrice:  price,
		TotalPrice: price.Mul(decimal.NewFromInt(qty)),
	}
}
