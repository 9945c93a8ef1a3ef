package repository

import (
	"context"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ダッシュボード集計
type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

func (r *ReportGormRepository) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 入金済みの合計（無ければ0）
func (r *ReportGormRepository) SumPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	row := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("payment_status = ?", model.PaymentStatusPaid).
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *ReportGormRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 公開状態は問わない
func (r *ReportGormRepository) CountLowStockProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("stock <= min_stock").
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ReportGormRepository) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at desc").Order("id desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// 月別集計はGo側で行う（DBごとの日付関数の差を避ける）
func (r *ReportGormRepository) PaidOrdersSince(ctx context.Context, since time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Select("id", "total_amount", "created_at").
		Where("payment_status = ? AND created_at >= ?", model.PaymentStatusPaid, since).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// 入金済み注文の数量合計が多い順（同数はid昇順）
func (r *ReportGormRepository) TopProducts(ctx context.Context, limit int) ([]repo.TopProductRow, error) {
	var rows []repo.TopProductRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("products.id AS product_id, products.name AS name, products.slug AS slug, SUM(order_items.quantity) AS total_sold").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.payment_status = ?", model.PaymentStatusPaid).
		Group("products.id, products.name, products.slug").
		Order("total_sold desc").Order("products.id asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.TopProductRow{}, err
	}
	return rows, nil
}
