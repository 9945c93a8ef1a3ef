package repository

import (
	"context"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
)

// 商品数つきカテゴリ
type CategoryWithCount struct {
	model.Category
	ProductsCount int64 `json:"products_count"`
}

type CategoryRepository interface {
	// 公開中カテゴリを商品数つきで返す。limit<=0なら全件。
	ListActiveWithCounts(ctx context.Context, limit int) ([]CategoryWithCount, error)
	ListAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
}
