package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	"github.com/appdotbuilder/souvia-ecommerce/internal/metrics"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase はセッション単位のカートの業務ロジックです。
// 在庫チェックは行わない（確定時の減算のみ）。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	metrics      *metrics.Storefront
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	m *metrics.Storefront,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		metrics:      m,
	}
}

type CartOutput struct {
	Items []model.CartItem `json:"cart_items"`
	Total decimal.Decimal  `json:"total"`
}

// POST /cart
type AddCartInput struct {
	ProductID        int64           `json:"product_id" form:"product_id" validate:"required"`
	Quantity         *int64          `json:"quantity" form:"quantity" validate:"required,min=1"`
	ProductVariation model.Variation `json:"product_variation" form:"-"`
}

// PATCH /cart/:id
type UpdateCartItemInput struct {
	Quantity *int64 `json:"quantity" form:"quantity" validate:"required,min=1"`
}

// ComputeTotal は Σ price × quantity（商品が無い行は0）
func ComputeTotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}

// 削除済み商品の行は除いて返す
func (u *CartUsecase) ListForSession(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	if sessionID == "" {
		return []model.CartItem{}, NewHTTPError(http.StatusBadRequest, "invalid session")
	}

	items, err := u.cartItemRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return []model.CartItem{}, errDB()
	}
	return withProducts(items), nil
}

// 商品が消えた行を落とす
func withProducts(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartOutput, error) {
	items, err := u.ListForSession(ctx, sessionID)
	if err != nil {
		return CartOutput{}, err
	}
	return CartOutput{Items: items, Total: ComputeTotal(items)}, nil
}

// Add はカートに追加（同一商品・同一バリエーションは数量加算）。
func (u *CartUsecase) Add(ctx context.Context, sessionID string, in AddCartInput) (model.CartItem, error) {
	if sessionID == "" {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	if err := validate(in); err != nil {
		return model.CartItem{}, err
	}

	// 商品の存在チェック
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.CartItem{}, NewFieldError("product_id", "The selected product id is invalid.")
		}
		return model.CartItem{}, errDB()
	}

	item, err := u.cartItemRepo.UpsertBySessionAndProduct(ctx, sessionID, in.ProductID, in.ProductVariation, *in.Quantity)
	if err != nil {
		return model.CartItem{}, errDB()
	}

	u.metrics.CartAdded()
	return item, nil
}

// 数量変更（在庫は見ない）
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID string, cartItemID int64, in UpdateCartItemInput) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	if cartItemID <= 0 {
		return errNotFound()
	}
	if err := validate(in); err != nil {
		return err
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, sessionID, cartItemID, *in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		return errDB()
	}
	return nil
}

// 明細削除
func (u *CartUsecase) Remove(ctx context.Context, sessionID string, cartItemID int64) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	if cartItemID <= 0 {
		return errNotFound()
	}

	if err := u.cartItemRepo.DeleteByID(ctx, sessionID, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		return errDB()
	}
	return nil
}
