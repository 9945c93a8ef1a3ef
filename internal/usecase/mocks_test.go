package usecase_test

import (
	"context"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ListRelated(ctx context.Context, p model.Product, limit int) ([]model.Product, error) {
	args := m.Called(ctx, p, limit)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ListAdmin(ctx context.Context, page int, limit int) ([]model.Product, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in mock tests")
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in mock tests")
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	panic("not used in mock tests")
}

func (m *ProductRepoMock) ExistsBySlug(ctx context.Context, slug string, exceptID int64) (bool, error) {
	panic("not used in mock tests")
}

func (m *ProductRepoMock) ExistsBySKU(ctx context.Context, sku string, exceptID int64) (bool, error) {
	panic("not used in mock tests")
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListBySession(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	args := m.Called(ctx, sessionID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) UpsertBySessionAndProduct(ctx context.Context, sessionID string, productID int64, variation model.Variation, addQty int64) (model.CartItem, error) {
	args := m.Called(ctx, sessionID, productID, variation, addQty)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, sessionID string, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, sessionID, cartItemID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, sessionID string, cartItemID int64, qty int64) error {
	args := m.Called(ctx, sessionID, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, sessionID string, cartItemID int64) error {
	args := m.Called(ctx, sessionID, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartItemRepoMock) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) ListActiveWithCounts(ctx context.Context, limit int) ([]repo.CategoryWithCount, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]repo.CategoryWithCount)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) ListAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

type TestimonialRepoMock struct{ mock.Mock }

func (m *TestimonialRepoMock) ListFeatured(ctx context.Context, limit int) ([]model.Testimonial, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Testimonial)
	return items, args.Error(1)
}

type ReportRepoMock struct{ mock.Mock }

func (m *ReportRepoMock) CountOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReportRepoMock) SumPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *ReportRepoMock) CountCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReportRepoMock) CountLowStockProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReportRepoMock) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *ReportRepoMock) PaidOrdersSince(ctx context.Context, since time.Time) ([]model.Order, error) {
	args := m.Called(ctx, since)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *ReportRepoMock) TopProducts(ctx context.Context, limit int) ([]repo.TopProductRow, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]repo.TopProductRow)
	return items, args.Error(1)
}

// 固定時刻
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// 固定の採番（衝突の再現用）
type fixedNumbers struct {
	order string
	txn   string
}

func (n fixedNumbers) OrderNumber(time.Time) string       { return n.order }
func (n fixedNumbers) TransactionNumber(time.Time) string { return n.txn }
