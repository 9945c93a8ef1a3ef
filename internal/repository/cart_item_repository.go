package repository

import (
	"context"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
)

// セッション単位のカート明細
type CartItemRepository interface {
	// 商品とカテゴリを付けて返す
	ListBySession(ctx context.Context, sessionID string) ([]model.CartItem, error)
	// 同一商品・同一バリエーションは数量を加算
	UpsertBySessionAndProduct(ctx context.Context, sessionID string, productID int64, variation model.Variation, addQty int64) (model.CartItem, error)
	FindByID(ctx context.Context, sessionID string, cartItemID int64) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, sessionID string, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, sessionID string, cartItemID int64) error
	// セッションの明細を全削除
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)
	// 商品削除時に全セッションから外す
	DeleteByProduct(ctx context.Context, productID int64) (int64, error)
}
