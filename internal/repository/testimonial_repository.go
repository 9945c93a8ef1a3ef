package repository

import (
	"context"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
)

type TestimonialRepository interface {
	// 公開中かつおすすめ
	ListFeatured(ctx context.Context, limit int) ([]model.Testimonial, error)
}
