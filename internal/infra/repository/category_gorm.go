package repository

import (
	"context"
	"errors"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// 公開中カテゴリ＋商品数（論理削除済みの商品は数えない）
func (r *CategoryGormRepository) ListActiveWithCounts(ctx context.Context, limit int) ([]repo.CategoryWithCount, error) {
	var rows []repo.CategoryWithCount

	q := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id AND products.deleted_at IS NULL) AS products_count").
		Where("categories.is_active = ?", true).
		Order("categories.id asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return []repo.CategoryWithCount{}, err
	}
	return rows, nil
}

// 全カテゴリ（管理画面の選択肢）
func (r *CategoryGormRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cats).Error; err != nil {
		return []model.Category{}, err
	}
	return cats, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}
