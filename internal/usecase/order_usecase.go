package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	"github.com/appdotbuilder/souvia-ecommerce/internal/logger"
	"github.com/appdotbuilder/souvia-ecommerce/internal/metrics"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// 注文まわりの設定
type OrderConfig struct {
	ShippingCost decimal.Decimal
	// trueなら在庫不足で注文失敗（既定は無条件減算）
	StrictStock bool
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	cartItems repo.CartItemRepository
	orders    repo.OrderRepository
	numbers   NumberGenerator
	clock     Clock
	cfg       OrderConfig
	log       *logger.Logger
	metrics   *metrics.Storefront
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	cartItems repo.CartItemRepository,
	orders repo.OrderRepository,
	numbers NumberGenerator,
	clock Clock,
	cfg OrderConfig,
	log *logger.Logger,
	m *metrics.Storefront,
) *OrderUsecase {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUsecase{
		tx:        tx,
		cartItems: cartItems,
		orders:    orders,
		numbers:   numbers,
		clock:     clock,
		cfg:       cfg,
		log:       log,
		metrics:   m,
	}
}

// POST /checkout
type CheckoutForm struct {
	Name          string  `json:"name" form:"name" validate:"required,max=255"`
	Email         string  `json:"email" form:"email" validate:"required,email,max=255"`
	Phone         string  `json:"phone" form:"phone" validate:"required,max=20"`
	Address       string  `json:"address" form:"address" validate:"required"`
	City          string  `json:"city" form:"city" validate:"required,max=255"`
	PostalCode    string  `json:"postal_code" form:"postal_code" validate:"required,max=10"`
	Province      string  `json:"province" form:"province" validate:"required,max=255"`
	PaymentMethod string  `json:"payment_method" form:"payment_method" validate:"required,oneof=bank_transfer cod"`
	Notes         *string `json:"notes" form:"notes"`
}

func (CheckoutForm) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":           "Full name is required.",
		"email.required":          "Email address is required.",
		"email.email":             "Please provide a valid email address.",
		"phone.required":          "Phone number is required.",
		"address.required":        "Shipping address is required.",
		"city.required":           "City is required.",
		"postal_code.required":    "Postal code is required.",
		"province.required":       "Province is required.",
		"payment_method.required": "Please select a payment method.",
		"payment_method.oneof":    "Invalid payment method selected.",
	}
}

// 前後の空白を落とし、空のnotesはnilにする
func (f CheckoutForm) normalized() CheckoutForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.Province = strings.TrimSpace(f.Province)
	f.PaymentMethod = strings.TrimSpace(f.PaymentMethod)
	if f.Notes != nil {
		n := strings.TrimSpace(*f.Notes)
		if n == "" {
			f.Notes = nil
		} else {
			f.Notes = &n
		}
	}
	return f
}

// GET /checkout
type CheckoutSummaryOutput struct {
	Items        []model.CartItem `json:"cart_items"`
	Subtotal     decimal.Decimal  `json:"subtotal"`
	ShippingCost decimal.Decimal  `json:"shipping_cost"`
	Total        decimal.Decimal  `json:"total"`
}

// 注文確認画面
type OrderConfirmationOutput struct {
	Order                   model.Order `json:"order"`
	ShowPaymentInstructions bool        `json:"show_payment_instructions"`
}

// CheckoutSummary はカートの中身と金額。空ならErrEmptyCart。
func (u *OrderUsecase) CheckoutSummary(ctx context.Context, sessionID string) (CheckoutSummaryOutput, error) {
	if sessionID == "" {
		return CheckoutSummaryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid session")
	}

	items, err := u.cartItems.ListBySession(ctx, sessionID)
	if err != nil {
		return CheckoutSummaryOutput{}, errDB()
	}
	items = withProducts(items)
	if len(items) == 0 {
		return CheckoutSummaryOutput{}, ErrEmptyCart
	}

	subtotal := ComputeTotal(items)
	return CheckoutSummaryOutput{
		Items:        items,
		Subtotal:     subtotal,
		ShippingCost: u.cfg.ShippingCost,
		Total:        subtotal.Add(u.cfg.ShippingCost),
	}, nil
}

// PlaceOrder はカートから注文を作る。
// 注文・明細・在庫減算・台帳・カート削除を1トランザクションで行う。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, sessionID string, form CheckoutForm) (model.Order, error) {
	if sessionID == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	form = form.normalized()

	var out model.Order

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート明細取得（価格はここで読んだものを使う）
		cartItems, err := r.CartItems().ListBySession(ctx, sessionID)
		if err != nil {
			return errDB()
		}
		//商品が消えた行は注文に含めない（最後のカート削除で消える）
		cartItems = withProducts(cartItems)
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		//入力チェック
		if err := validate(form); err != nil {
			return err
		}

		//顧客（既存なら上書きしない）
		customer, _, err := r.Customers().FirstOrCreateByEmail(ctx, model.Customer{
			Name:       form.Name,
			Email:      form.Email,
			Phone:      form.Phone,
			Address:    form.Address,
			City:       form.City,
			PostalCode: form.PostalCode,
			Province:   form.Province,
			Status:     model.CustomerStatusActive,
		})
		if err != nil {
			return errDB()
		}

		//金額
		subtotal := ComputeTotal(cartItems)
		shipping := u.cfg.ShippingCost
		tax := decimal.Zero
		total := subtotal.Add(shipping).Add(tax)

		now := u.clock.Now().UTC()

		// 注文作成
		order := model.Order{
			OrderNumber:        u.numbers.OrderNumber(now),
			CustomerID:         customer.ID,
			Status:             model.OrderStatusPending,
			Subtotal:           subtotal,
			ShippingCost:       shipping,
			TaxAmount:          tax,
			TotalAmount:        total,
			PaymentMethod:      model.PaymentMethod(form.PaymentMethod),
			PaymentStatus:      model.PaymentStatusPending,
			ShippingAddress:    form.Address,
			ShippingCity:       form.City,
			ShippingPostalCode: form.PostalCode,
			ShippingProvince:   form.Province,
			Notes:              form.Notes,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return persistError(err)
		}
		order.ID = orderID

		//明細（価格のスナップショット）
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		for _, ci := range cartItems {
			orderItems = append(orderItems, model.OrderItem{
				ProductID:        ci.ProductID,
				Quantity:         ci.Quantity,
				UnitPrice:        ci.Product.Price,
				TotalPrice:       ci.Product.Price.Mul(decimal.NewFromInt(ci.Quantity)),
				ProductVariation: ci.ProductVariation,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return errDB()
		}

		//在庫減算
		for _, ci := range cartItems {
			if u.cfg.StrictStock {
				ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
				if err != nil {
					return errDB()
				}
				if !ok {
					return NewHTTPError(http.StatusConflict, "out of stock")
				}
				continue
			}
			if err := r.Inventory().DecreaseStock(ctx, ci.ProductID, ci.Quantity); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return errNotFound()
				}
				return errDB()
			}
		}

		//売上を台帳へ
		if _, err := r.Ledger().Create(ctx, model.Transaction{
			TransactionNumber: u.numbers.TransactionNumber(now),
			Type:              model.TransactionTypeIncome,
			Category:          model.TransactionCategorySales,
			Amount:            total,
			Description:       "Order #" + order.OrderNumber,
			TransactionDate:   dateOf(now),
			Reference:         model.OrderReference(orderID),
		}); err != nil {
			return persistError(err)
		}

		//カートを空にする
		if _, err := r.CartItems().DeleteBySession(ctx, sessionID); err != nil {
			return errDB()
		}

		order.Items = orderItems
		order.Customer = &customer
		out = order
		return nil
	})
	if err != nil {
		u.recordFailure(ctx, err)
		return model.Order{}, err
	}

	u.metrics.CheckoutPlaced(out.TotalAmount)
	u.log.Event(u.log.WithField(ctx, "order_number", out.OrderNumber), zerolog.InfoLevel).
		Str("total", out.TotalAmount.StringFixed(2)).
		Int("items", len(out.Items)).
		Msg("checkout.placed")
	return out, nil
}

// GetOrder は顧客・明細・商品付きの注文
func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderConfirmationOutput, error) {
	if orderID <= 0 {
		return OrderConfirmationOutput{}, errNotFound()
	}

	o, err := u.orders.FindDetail(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderConfirmationOutput{}, errNotFound()
	}
	if err != nil {
		return OrderConfirmationOutput{}, errDB()
	}

	return OrderConfirmationOutput{
		Order:                   o,
		ShowPaymentInstructions: o.NeedsPaymentInstructions(),
	}, nil
}

// 一意制約違反は採番の衝突
func persistError(err error) error {
	if errors.Is(err, repo.ErrConflict) {
		return NewHTTPError(http.StatusInternalServerError, "order number conflict")
	}
	return errDB()
}

func (u *OrderUsecase) recordFailure(ctx context.Context, err error) {
	reason := "error"
	if he, ok := AsHTTPError(err); ok {
		switch {
		case he == ErrEmptyCart:
			reason = "empty_cart"
		case he.Status == http.StatusUnprocessableEntity:
			reason = "invalid"
		case he.Status == http.StatusConflict:
			reason = "out_of_stock"
		case he.Status == http.StatusNotFound:
			reason = "not_found"
		}
	}
	u.metrics.CheckoutFailed(reason)
	if reason == "error" {
		u.log.Error(ctx, "checkout.failed", err)
	}
}

// UTCの日付（時刻は0時）
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
