package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開中かつおすすめ商品（カテゴリ付き）
func (r *ProductGormRepository) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("id asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 公開商品のみを、カテゴリ絞り込み/ページング付きで新しい順に返す。
func (r *ProductGormRepository) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("products.is_active = ?", true)

	//カテゴリ（slug一致のみ）
	if slug := strings.TrimSpace(q.CategorySlug); slug != "" {
		tx = tx.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", slug)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	err := tx.Preload("Category").
		Order("products.created_at desc").Order("products.id desc").
		Offset(offset).Limit(q.Limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// slugで商品を取得（カテゴリ付き）
func (r *ProductGormRepository) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 同カテゴリの公開商品（自分以外、id昇順）
func (r *ProductGormRepository) ListRelated(ctx context.Context, p model.Product, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ? AND category_id = ? AND id <> ?", true, p.CategoryID, p.ID).
		Order("id asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 管理画面の一覧（非公開も含む、新しい順）
func (r *ProductGormRepository) ListAdmin(ctx context.Context, page int, limit int) ([]model.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	var products []model.Product
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at desc").Order("id desc").
		Offset(offset).Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}
	return products, total, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.Category = nil
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, wrapUnique(err)
	}
	return p, nil
}

// 商品の更新（フォームの全項目を上書き）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"category_id":     p.CategoryID,
		"name":            p.Name,
		"slug":            p.Slug,
		"description":     p.Description,
		"price":           p.Price,
		"stock":           p.Stock,
		"min_stock":       p.MinStock,
		"sku":             p.SKU,
		"images":          p.Images,
		"variations":      p.Variations,
		"weight":          p.Weight,
		"shipping_origin": p.ShippingOrigin,
		"is_active":       p.IsActive,
		"is_featured":     p.IsFeatured,
	})
	if res.Error != nil {
		return wrapUnique(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（論理削除）
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 論理削除済みも含めて重複チェック（uniqueIndexは削除済みにも効くため）
func (r *ProductGormRepository) ExistsBySlug(ctx context.Context, slug string, exceptID int64) (bool, error) {
	return r.exists(ctx, "slug", slug, exceptID)
}

func (r *ProductGormRepository) ExistsBySKU(ctx context.Context, sku string, exceptID int64) (bool, error) {
	return r.exists(ctx, "sku", sku, exceptID)
}

func (r *ProductGormRepository) exists(ctx context.Context, column string, value string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Product{}).
		Where(column+" = ? AND id <> ?", value, exceptID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
