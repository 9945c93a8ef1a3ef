package repository

import (
	"context"
	"errors"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"gorm.io/gorm"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// セッションの明細を商品・カテゴリ付きで取得
func (r *CartItemGormRepository) ListBySession(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Where("session_id = ?", sessionID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 同一商品・同一バリエーションは数量加算
func (r *CartItemGormRepository) UpsertBySessionAndProduct(ctx context.Context, sessionID string, productID int64, variation model.Variation, addQty int64) (model.CartItem, error) {
	if addQty <= 0 {
		return model.CartItem{}, errors.New("invalid quantity")
	}

	var out model.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		q := tx.Where("session_id = ? AND product_id = ?", sessionID, productID)
		// 指定なしはNULLで保存している
		if len(variation) == 0 {
			q = q.Where("product_variation IS NULL")
		} else {
			q = q.Where("product_variation = ?", variation)
		}
		err := q.Order("id asc").First(&item).Error

		if err == nil {
			// 既存ありだったら数量を増やす
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity + ?", addQty))

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			item.Quantity += addQty
			out = item
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		newItem := model.CartItem{
			SessionID:        sessionID,
			ProductID:        productID,
			Quantity:         addQty,
			ProductVariation: variation,
		}
		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}
		out = newItem
		return nil
	})
	if err != nil {
		return model.CartItem{}, err
	}
	return out, nil
}

// 明細を取得（他セッションの明細は見えない）
func (r *CartItemGormRepository) FindByID(ctx context.Context, sessionID string, cartItemID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", cartItemID, sessionID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 明細の数量を更新
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, sessionID string, cartItemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND session_id = ?", cartItemID, sessionID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartItemGormRepository) DeleteByID(ctx context.Context, sessionID string, cartItemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", cartItemID, sessionID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// セッションの明細を全削除
func (r *CartItemGormRepository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// 商品の明細を全セッション分削除
func (r *CartItemGormRepository) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
