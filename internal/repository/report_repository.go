package repository

import (
	"context"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	"github.com/shopspring/decimal"
)

// 売れ筋商品の集計行
type TopProductRow struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	TotalSold int64  `json:"total_sold"`
}

// 管理ダッシュボードの集計（読み取りのみ）
type ReportRepository interface {
	CountOrders(ctx context.Context) (int64, error)
	SumPaidRevenue(ctx context.Context) (decimal.Decimal, error)
	CountCustomers(ctx context.Context) (int64, error)
	// stock <= min_stock（公開状態は問わない）
	CountLowStockProducts(ctx context.Context) (int64, error)
	RecentOrders(ctx context.Context, limit int) ([]model.Order, error)
	// since以降の入金済み注文
	PaidOrdersSince(ctx context.Context, since time.Time) ([]model.Order, error)
	TopProducts(ctx context.Context, limit int) ([]TopProductRow, error)
}
