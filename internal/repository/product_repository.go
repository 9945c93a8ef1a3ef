package repository

import (
	"context"
	"errors"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反
var ErrConflict = errors.New("conflict")

// 一覧検索
type ProductListQuery struct {
	Page         int
	Limit        int
	CategorySlug string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// 公開中かつおすすめ
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)
	// 公開中を新しい順で
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, error)
	// 同じカテゴリの公開商品（自分以外）
	ListRelated(ctx context.Context, p model.Product, limit int) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// 管理画面用（非公開も含む）
	ListAdmin(ctx context.Context, page int, limit int) ([]model.Product, int64, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
	ExistsBySlug(ctx context.Context, slug string, exceptID int64) (bool, error)
	ExistsBySKU(ctx context.Context, sku string, exceptID int64) (bool, error)
}
