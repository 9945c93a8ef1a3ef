package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	"github.com/appdotbuilder/souvia-ecommerce/internal/infra/db/dbtest"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManagerGorm_RollbackOnError(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	cat := dbtest.MustCategory(t, conn, "Dress", "dress")
	p := dbtest.MustProduct(t, conn, cat.ID, "a", "100", dbtest.WithStock(5, 1))

	boom := errors.New("boom")
	err := NewTxManagerGorm(conn).WithinTx(ctx, func(r repo.TxRepos) error {
		require.NoError(t, r.Inventory().DecreaseStock(ctx, p.ID, 3))
		_, err := r.Ledger().Create(ctx, model.Transaction{
			TransactionNumber: "TXN-1",
			Type:              model.TransactionTypeIncome,
			Category:          model.TransactionCategorySales,
			Amount:            decimal.NewFromInt(300),
			Description:       "Order #ORD-1",
			TransactionDate:   time.Now().UTC(),
			Reference:         model.OrderReference(1),
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var got model.Product
	require.NoError(t, conn.First(&got, p.ID).Error)
	assert.Equal(t, int64(5), got.Stock)

	var n int64
	require.NoError(t, conn.Model(&model.Transaction{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestTxManagerGorm_Commit(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	cust := dbtest.MustCustomer(t, conn, "Ayu", "ayu@example.com")

	var orderID int64
	err := NewTxManagerGorm(conn).WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, model.Order{
			OrderNumber:        "ORD-1",
			CustomerID:         cust.ID,
			Status:             model.OrderStatusPending,
			Subtotal:           decimal.NewFromInt(10),
			ShippingCost:       decimal.Zero,
			TaxAmount:          decimal.Zero,
			TotalAmount:        decimal.NewFromInt(10),
			PaymentMethod:      model.PaymentMethodCOD,
			PaymentStatus:      model.PaymentStatusPending,
			ShippingAddress:    "x",
			ShippingCity:       "x",
			ShippingPostalCode: "x",
			ShippingProvince:   "x",
		})
		orderID = id
		return err
	})
	require.NoError(t, err)

	o, err := NewOrderGormRepository(conn).FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", o.OrderNumber)
}
