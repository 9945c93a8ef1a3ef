package repository

import (
	"context"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
)

type InventoryRepository interface {
	// 無条件で減算（マイナスもあり得る）
	DecreaseStock(ctx context.Context, productID int64, qty int64) error

	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 管理画面での在庫変更の記録
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
