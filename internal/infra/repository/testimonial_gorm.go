package repository

import (
	"context"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"

	"gorm.io/gorm"
)

type TestimonialGormRepository struct {
	db *gorm.DB
}

func NewTestimonialGormRepository(db *gorm.DB) *TestimonialGormRepository {
	return &TestimonialGormRepository{db: db}
}

func (r *TestimonialGormRepository) ListFeatured(ctx context.Context, limit int) ([]model.Testimonial, error) {
	var ts []model.Testimonial
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("id asc").
		Limit(limit).
		Find(&ts).Error
	if err != nil {
		return []model.Testimonial{}, err
	}
	return ts, nil
}
