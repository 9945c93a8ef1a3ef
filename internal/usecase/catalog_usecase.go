package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"
)

const (
	homeFeaturedLimit    = 6
	homeCategoryLimit    = 8
	homeTestimonialLimit = 3
	productsPerPage      = 12
	relatedLimit         = 4
)

// 公開カタログ（読み取りのみ）
type CatalogUsecase struct {
	products     repo.ProductRepository
	categories   repo.CategoryRepository
	testimonials repo.TestimonialRepository
}

func NewCatalogUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	testimonials repo.TestimonialRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		products:     products,
		categories:   categories,
		testimonials: testimonials,
	}
}

type HomeOutput struct {
	FeaturedProducts []model.Product          `json:"featured_products"`
	Categories       []repo.CategoryWithCount `json:"categories"`
	Testimonials     []model.Testimonial      `json:"testimonials"`
}

// ページング情報
type PageMeta struct {
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

func newPageMeta(page int, perPage int, total int64) PageMeta {
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return PageMeta{Page: page, PerPage: perPage, Total: total, LastPage: last}
}

// GET /products の入力
type ListProductsInput struct {
	Page         int
	CategorySlug string
}

type ProductListOutput struct {
	Products   []model.Product          `json:"products"`
	Meta       PageMeta                 `json:"meta"`
	Categories []repo.CategoryWithCount `json:"categories"`
	// 絞り込み中のカテゴリslug（無ければ空）
	Category string `json:"category"`
}

type ProductDetailOutput struct {
	Product         model.Product   `json:"product"`
	RelatedProducts []model.Product `json:"related_products"`
}

func (u *CatalogUsecase) Home(ctx context.Context) (HomeOutput, error) {
	featured, err := u.products.ListFeatured(ctx, homeFeaturedLimit)
	if err != nil {
		return HomeOutput{}, errDB()
	}
	cats, err := u.categories.ListActiveWithCounts(ctx, homeCategoryLimit)
	if err != nil {
		return HomeOutput{}, errDB()
	}
	ts, err := u.testimonials.ListFeatured(ctx, homeTestimonialLimit)
	if err != nil {
		return HomeOutput{}, errDB()
	}

	return HomeOutput{
		FeaturedProducts: featured,
		Categories:       cats,
		Testimonials:     ts,
	}, nil
}

// 公開商品を新しい順に12件ずつ
func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	slug := strings.TrimSpace(in.CategorySlug)

	items, total, err := u.products.ListActive(ctx, repo.ProductListQuery{
		Page:         page,
		Limit:        productsPerPage,
		CategorySlug: slug,
	})
	if err != nil {
		return ProductListOutput{}, errDB()
	}

	cats, err := u.categories.ListActiveWithCounts(ctx, 0)
	if err != nil {
		return ProductListOutput{}, errDB()
	}

	return ProductListOutput{
		Products:   items,
		Meta:       newPageMeta(page, productsPerPage, total),
		Categories: cats,
		Category:   slug,
	}, nil
}

// slugで商品詳細。非公開は見せない。
func (u *CatalogUsecase) GetProduct(ctx context.Context, slug string) (ProductDetailOutput, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ProductDetailOutput{}, errNotFound()
	}

	p, err := u.products.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDetailOutput{}, errNotFound()
	}
	if err != nil {
		return ProductDetailOutput{}, errDB()
	}
	if !p.IsActive {
		return ProductDetailOutput{}, errNotFound()
	}

	related, err := u.products.ListRelated(ctx, p, relatedLimit)
	if err != nil {
		return ProductDetailOutput{}, errDB()
	}

	return ProductDetailOutput{Product: p, RelatedProducts: related}, nil
}
