package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	"github.com/appdotbuilder/souvia-ecommerce/internal/infra/db/dbtest"
	gormrepo "github.com/appdotbuilder/souvia-ecommerce/internal/infra/repository"
	"github.com/appdotbuilder/souvia-ecommerce/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var checkoutNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

type checkoutFixture struct {
	conn  *gorm.DB
	uc    *usecase.OrderUsecase
	cart  *gormrepo.CartItemGormRepository
	dress model.Product
	scarf model.Product
}

// 2商品（100000×2, 50000×1）をカートに入れた状態
func newCheckoutFixture(t *testing.T, numbers usecase.NumberGenerator, strict bool) checkoutFixture {
	t.Helper()
	conn := dbtest.Open(t)
	ctx := context.Background()

	cat := dbtest.MustCategory(t, conn, "Women", "women")
	dress := dbtest.MustProduct(t, conn, cat.ID, "linen-dress", "100000", dbtest.WithStock(10, 2))
	scarf := dbtest.MustProduct(t, conn, cat.ID, "silk-scarf", "50000", dbtest.WithStock(5, 1))

	cart := gormrepo.NewCartItemGormRepository(conn)
	_, err := cart.UpsertBySessionAndProduct(ctx, "sess-1", dress.ID, model.Variation{"size": "M"}, 2)
	require.NoError(t, err)
	_, err = cart.UpsertBySessionAndProduct(ctx, "sess-1", scarf.ID, nil, 1)
	require.NoError(t, err)

	if numbers == nil {
		numbers = usecase.UUIDNumberGenerator{}
	}
	uc := usecase.NewOrderUsecase(
		gormrepo.NewTxManagerGorm(conn),
		cart,
		gormrepo.NewOrderGormRepository(conn),
		numbers,
		fixedClock{now: checkoutNow},
		usecase.OrderConfig{ShippingCost: decimal.NewFromInt(15000), StrictStock: strict},
		nil,
		nil,
	)
	return checkoutFixture{conn: conn, uc: uc, cart: cart, dress: dress, scarf: scarf}
}

func validForm() usecase.CheckoutForm {
	return usecase.CheckoutForm{
		Name:          "Siti Rahma",
		Email:         "siti@example.com",
		Phone:         "081234567890",
		Address:       "Jl. Melati 5",
		City:          "Jakarta",
		PostalCode:    "10110",
		Province:      "DKI Jakarta",
		PaymentMethod: "bank_transfer",
	}
}

func count(t *testing.T, conn *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(m).Count(&n).Error)
	return n
}

func stockOf(t *testing.T, conn *gorm.DB, id int64) int64 {
	t.Helper()
	var p model.Product
	require.NoError(t, conn.First(&p, id).Error)
	return p.Stock
}

func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)
	ctx := context.Background()

	order, err := f.uc.PlaceOrder(ctx, "sess-1", validForm())
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-20261016093000-[0-9A-F]{8}$`, order.OrderNumber)
	assert.True(t, decimal.NewFromInt(250000).Equal(order.Subtotal))
	assert.True(t, decimal.NewFromInt(15000).Equal(order.ShippingCost))
	assert.True(t, decimal.Zero.Equal(order.TaxAmount))
	assert.True(t, decimal.NewFromInt(265000).Equal(order.TotalAmount))
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "Jakarta", order.ShippingCity)

	// 在庫
	assert.Equal(t, int64(8), stockOf(t, f.conn, f.dress.ID))
	assert.Equal(t, int64(4), stockOf(t, f.conn, f.scarf.ID))

	// 明細
	items, err := gormrepo.NewOrderItemGormRepository(f.conn).ListByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// 合計は保存された明細から再計算できる
	sum := decimal.Zero
	for _, it := range items {
		assert.True(t, it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)).Equal(it.TotalPrice))
		sum = sum.Add(it.TotalPrice)
	}
	assert.True(t, sum.Equal(order.Subtotal), sum.String())
	assert.True(t, sum.Add(order.ShippingCost).Add(order.TaxAmount).Equal(order.TotalAmount))

	// 台帳
	txns, err := gormrepo.NewLedgerGormRepository(f.conn).ListByReference(ctx, model.OrderReference(order.ID))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Regexp(t, `^TXN-20261016093000-[0-9A-F]{8}$`, txns[0].TransactionNumber)
	assert.Equal(t, model.TransactionTypeIncome, txns[0].Type)
	assert.Equal(t, "Sales", txns[0].Category)
	assert.True(t, decimal.NewFromInt(265000).Equal(txns[0].Amount))
	assert.Equal(t, "Order #"+order.OrderNumber, txns[0].Description)
	assert.Equal(t, "2026-10-16", txns[0].TransactionDate.UTC().Format("2006-01-02"))

	// カートは空
	left, err := f.cart.ListBySession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, left)

	// 顧客
	c, err := gormrepo.NewCustomerGormRepository(f.conn).FindByEmail(ctx, "siti@example.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, order.CustomerID)
	assert.Equal(t, "Siti Rahma", c.Name)
}

func TestOrderUsecase_PlaceOrder_SnapshotsPrice(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)
	ctx := context.Background()

	order, err := f.uc.PlaceOrder(ctx, "sess-1", validForm())
	require.NoError(t, err)

	// 後から価格を変えても明細は変わらない
	require.NoError(t, f.conn.Model(&model.Product{}).Where("id = ?", f.dress.ID).
		Update("price", decimal.NewFromInt(120000)).Error)

	out, err := f.uc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, out.Order.Items, 2)

	for _, it := range out.Order.Items {
		if it.ProductID != f.dress.ID {
			continue
		}
		assert.True(t, decimal.NewFromInt(100000).Equal(it.UnitPrice))
		assert.True(t, decimal.NewFromInt(200000).Equal(it.TotalPrice))
		assert.Equal(t, int64(2), it.Quantity)
		assert.True(t, it.ProductVariation.Equal(model.Variation{"size": "M"}))
	}
	assert.True(t, out.ShowPaymentInstructions)
	require.NotNil(t, out.Order.Customer)
	assert.Equal(t, "siti@example.com", out.Order.Customer.Email)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)

	_, err := f.uc.PlaceOrder(context.Background(), "other-session", validForm())
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)

	assert.Zero(t, count(t, f.conn, &model.Order{}))
	assert.Zero(t, count(t, f.conn, &model.Customer{}))
	assert.Zero(t, count(t, f.conn, &model.Transaction{}))
}

func TestOrderUsecase_PlaceOrder_ValidationErrors(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)

	form := validForm()
	form.Name = "  "
	form.Email = "not-an-email"
	form.PaymentMethod = "crypto"

	_, err := f.uc.PlaceOrder(context.Background(), "sess-1", form)
	he := requireStatus(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "Full name is required.", he.Fields["name"])
	assert.Equal(t, "Please provide a valid email address.", he.Fields["email"])
	assert.Equal(t, "Invalid payment method selected.", he.Fields["payment_method"])

	// 何も書き込まれていない
	assert.Zero(t, count(t, f.conn, &model.Order{}))
	assert.Zero(t, count(t, f.conn, &model.Customer{}))
	assert.Equal(t, int64(2), count(t, f.conn, &model.CartItem{}))
	assert.Equal(t, int64(10), stockOf(t, f.conn, f.dress.ID))
}

func TestOrderUsecase_PlaceOrder_ExistingCustomerNotOverwritten(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)
	old := dbtest.MustCustomer(t, f.conn, "Old Name", "siti@example.com")

	order, err := f.uc.PlaceOrder(context.Background(), "sess-1", validForm())
	require.NoError(t, err)
	assert.Equal(t, old.ID, order.CustomerID)

	var got model.Customer
	require.NoError(t, f.conn.First(&got, old.ID).Error)
	assert.Equal(t, "Old Name", got.Name)
	assert.Equal(t, int64(1), count(t, f.conn, &model.Customer{}))
}

func TestOrderUsecase_PlaceOrder_RollbackOnLedgerConflict(t *testing.T) {
	f := newCheckoutFixture(t, fixedNumbers{order: "ORD-FIXED", txn: "TXN-FIXED"}, false)

	// 台帳番号を先に使っておく
	require.NoError(t, f.conn.Create(&model.Transaction{
		TransactionNumber: "TXN-FIXED",
		Type:              model.TransactionTypeIncome,
		Category:          "Sales",
		Amount:            decimal.NewFromInt(1),
		Description:       "seed",
		TransactionDate:   checkoutNow,
		Reference:         model.PurchaseReference(1),
	}).Error)

	_, err := f.uc.PlaceOrder(context.Background(), "sess-1", validForm())
	he := requireStatus(t, err, http.StatusInternalServerError)
	assert.Equal(t, "order number conflict", he.Message)

	assert.Zero(t, count(t, f.conn, &model.Order{}))
	assert.Zero(t, count(t, f.conn, &model.OrderItem{}))
	assert.Zero(t, count(t, f.conn, &model.Customer{}))
	assert.Equal(t, int64(1), count(t, f.conn, &model.Transaction{}))
	assert.Equal(t, int64(2), count(t, f.conn, &model.CartItem{}))
	assert.Equal(t, int64(10), stockOf(t, f.conn, f.dress.ID))
	assert.Equal(t, int64(5), stockOf(t, f.conn, f.scarf.ID))
}

func TestOrderUsecase_PlaceOrder_UnconditionalDecrement(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)
	require.NoError(t, f.conn.Model(&model.Product{}).Where("id = ?", f.dress.ID).Update("stock", 1).Error)

	_, err := f.uc.PlaceOrder(context.Background(), "sess-1", validForm())
	require.NoError(t, err)
	assert.Equal(t, int64(-1), stockOf(t, f.conn, f.dress.ID))
}

func TestOrderUsecase_PlaceOrder_StrictStock(t *testing.T) {
	f := newCheckoutFixture(t, nil, true)
	require.NoError(t, f.conn.Model(&model.Product{}).Where("id = ?", f.dress.ID).Update("stock", 1).Error)

	_, err := f.uc.PlaceOrder(context.Background(), "sess-1", validForm())
	requireStatus(t, err, http.StatusConflict)

	assert.Zero(t, count(t, f.conn, &model.Order{}))
	assert.Equal(t, int64(1), stockOf(t, f.conn, f.dress.ID))
	assert.Equal(t, int64(5), stockOf(t, f.conn, f.scarf.ID))
	assert.Equal(t, int64(2), count(t, f.conn, &model.CartItem{}))
}

func TestOrderUsecase_CheckoutSummary(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)
	ctx := context.Background()

	out, err := f.uc.CheckoutSummary(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.True(t, decimal.NewFromInt(250000).Equal(out.Subtotal))
	assert.True(t, decimal.NewFromInt(265000).Equal(out.Total))

	_, err = f.uc.CheckoutSummary(ctx, "empty")
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)
}

func TestOrderUsecase_GetOrder_NotFound(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)

	_, err := f.uc.GetOrder(context.Background(), 404)
	requireStatus(t, err, http.StatusNotFound)
}

// 商品が論理削除されたまま残った明細は無視して注文できる
func TestOrderUsecase_SkipsCartRowsOfDeletedProducts(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)
	ctx := context.Background()
	require.NoError(t, f.conn.Delete(&model.Product{}, f.scarf.ID).Error)

	summary, err := f.uc.CheckoutSummary(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, f.dress.ID, summary.Items[0].ProductID)
	assert.True(t, decimal.NewFromInt(200000).Equal(summary.Subtotal))

	order, err := f.uc.PlaceOrder(ctx, "sess-1", validForm())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200000).Equal(order.Subtotal))
	assert.True(t, decimal.NewFromInt(215000).Equal(order.TotalAmount))

	items, err := gormrepo.NewOrderItemGormRepository(f.conn).ListByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// 残っていた行も片付く
	assert.Zero(t, count(t, f.conn, &model.CartItem{}))
	var scarf model.Product
	require.NoError(t, f.conn.Unscoped().First(&scarf, f.scarf.ID).Error)
	assert.Equal(t, int64(5), scarf.Stock)

	_, err = f.uc.PlaceOrder(ctx, "sess-1", validForm())
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)
}

func TestOrderUsecase_OnlyDeletedProductsMeansEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t, nil, false)
	ctx := context.Background()
	require.NoError(t, f.conn.Delete(&model.Product{}, []int64{f.dress.ID, f.scarf.ID}).Error)

	_, err := f.uc.CheckoutSummary(ctx, "sess-1")
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)

	_, err = f.uc.PlaceOrder(ctx, "sess-1", validForm())
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)
	assert.Zero(t, count(t, f.conn, &model.Order{}))
}
