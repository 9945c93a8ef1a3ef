package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	adminProductsPerPage = 15
	auditHistoryLimit    = 50
	adminAdjustReason    = "admin update"
)

// 管理画面の商品CRUD。書き込みは監査ログと同じTxで行う。
type ProductUsecase struct {
	tx         repo.TransactionManager
	products   repo.ProductRepository
	categories repo.CategoryRepository
	audits     repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	audits repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		tx:         tx,
		products:   products,
		categories: categories,
		audits:     audits,
	}
}

// POST/PUT /admin/products の入力
type ProductForm struct {
	CategoryID     *int64              `json:"category_id" validate:"required"`
	Name           string              `json:"name" validate:"required,max=255"`
	Slug           string              `json:"slug" validate:"required,max=255"`
	Description    string              `json:"description" validate:"required"`
	Price          *decimal.Decimal    `json:"price" validate:"required,min=0"`
	Stock          *int64              `json:"stock" validate:"required,min=0"`
	MinStock       *int64              `json:"min_stock" validate:"required,min=0"`
	SKU            string              `json:"sku" validate:"required,max=255"`
	Images         []string            `json:"images" validate:"omitempty,dive,max=2048"`
	Variations     map[string][]string `json:"variations"`
	Weight         *decimal.Decimal    `json:"weight" validate:"omitempty,min=0"`
	ShippingOrigin *string             `json:"shipping_origin" validate:"omitempty,max=255"`
	IsActive       bool                `json:"is_active"`
	IsFeatured     bool                `json:"is_featured"`
}

func (ProductForm) ValidationMessages() map[string]string {
	return map[string]string{
		"category_id.required": "Please select a category.",
		"slug.required":        "The product slug is required.",
		"sku.required":         "The product SKU is required.",
		"price.min":            "The price must be at least 0.",
		"stock.min":            "The stock must be at least 0.",
	}
}

func (f ProductForm) normalized() ProductForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Slug = strings.TrimSpace(f.Slug)
	f.SKU = strings.TrimSpace(f.SKU)
	if f.ShippingOrigin != nil {
		s := strings.TrimSpace(*f.ShippingOrigin)
		if s == "" {
			f.ShippingOrigin = nil
		} else {
			f.ShippingOrigin = &s
		}
	}
	return f
}

// フォームの値をProductに写す（IDとタイムスタンプは触らない）
func (f ProductForm) apply(p *model.Product) {
	p.CategoryID = *f.CategoryID
	p.Name = f.Name
	p.Slug = f.Slug
	p.Description = f.Description
	p.Price = *f.Price
	p.Stock = *f.Stock
	p.MinStock = *f.MinStock
	p.SKU = f.SKU
	p.Images = model.StringList(f.Images)
	p.Variations = model.VariationOptions(f.Variations)
	p.Weight = decimal.NullDecimal{}
	if f.Weight != nil {
		p.Weight = decimal.NewNullDecimal(*f.Weight)
	}
	p.ShippingOrigin = f.ShippingOrigin
	p.IsActive = f.IsActive
	p.IsFeatured = f.IsFeatured
}

type AdminProductListOutput struct {
	Products []model.Product `json:"products"`
	Meta     PageMeta        `json:"meta"`
}

func (u *ProductUsecase) List(ctx context.Context, page int) (AdminProductListOutput, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := u.products.ListAdmin(ctx, page, adminProductsPerPage)
	if err != nil {
		return AdminProductListOutput{}, errDB()
	}
	return AdminProductListOutput{
		Products: items,
		Meta:     newPageMeta(page, adminProductsPerPage, total),
	}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, errNotFound()
	}
	if err != nil {
		return model.Product{}, errDB()
	}
	return p, nil
}

// フォーム用のカテゴリ一覧
func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categories.ListAll(ctx)
	if err != nil {
		return nil, errDB()
	}
	return cats, nil
}

// 商品の操作履歴（新しい順）
func (u *ProductUsecase) History(ctx context.Context, productID int64) ([]model.AuditLog, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	rt := model.AuditResourceProduct
	logs, err := u.audits.List(ctx, repo.AuditLogFilter{
		ResourceType: &rt,
		ResourceID:   &productID,
		Limit:        auditHistoryLimit,
	})
	if err != nil {
		return nil, errDB()
	}
	return logs, nil
}

func (u *ProductUsecase) Create(ctx context.Context, adminUserID int64, form ProductForm) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	form = form.normalized()
	if err := u.checkForm(ctx, form); err != nil {
		return model.Product{}, err
	}

	var created model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := checkUnique(ctx, r.Products(), form, 0); err != nil {
			return err
		}

		var p model.Product
		form.apply(&p)
		out, err := r.Products().Create(ctx, p)
		if err != nil {
			return persistProductError(err)
		}
		created = out

		//監査ログ（作成）
		return writeAudit(ctx, r.AuditLogs(), adminUserID, model.AuditActionCreateProduct, out.ID, nil, &out)
	})
	if err != nil {
		return model.Product{}, err
	}
	return created, nil
}

func (u *ProductUsecase) Update(ctx context.Context, adminUserID int64, productID int64, form ProductForm) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	form = form.normalized()
	if err := u.checkForm(ctx, form); err != nil {
		return model.Product{}, err
	}

	var updated model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		if err != nil {
			return errDB()
		}
		if err := checkUnique(ctx, r.Products(), form, productID); err != nil {
			return err
		}

		after := before
		form.apply(&after)
		after.Category = nil
		if err := r.Products().Update(ctx, after); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound()
			}
			return persistProductError(err)
		}

		//在庫が変わったら差分を履歴に残す
		if delta := after.Stock - before.Stock; delta != 0 {
			if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
				ProductID:   productID,
				AdminUserID: adminUserID,
				Delta:       delta,
				Reason:      adminAdjustReason,
			}); err != nil {
				return errDB()
			}
		}

		before.Category = nil
		updated = after
		return writeAudit(ctx, r.AuditLogs(), adminUserID, model.AuditActionUpdateProduct, productID, &before, &after)
	})
	if err != nil {
		return model.Product{}, err
	}
	return updated, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		if err != nil {
			return errDB()
		}

		err = r.Products().SoftDelete(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		if err != nil {
			return errDB()
		}

		//カートからも外す
		if _, err := r.CartItems().DeleteByProduct(ctx, productID); err != nil {
			return errDB()
		}

		before.Category = nil
		return writeAudit(ctx, r.AuditLogs(), adminUserID, model.AuditActionDeleteProduct, productID, &before, nil)
	})
}

// 入力チェックとカテゴリの存在確認（Txの外）
func (u *ProductUsecase) checkForm(ctx context.Context, form ProductForm) error {
	if err := validate(form); err != nil {
		return err
	}
	_, err := u.categories.FindByID(ctx, *form.CategoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewFieldError("category_id", "The selected category id is invalid.")
	}
	if err != nil {
		return errDB()
	}
	return nil
}

// slug/skuの重複（削除済みも含む、自分は除く）
func checkUnique(ctx context.Context, products repo.ProductRepository, form ProductForm, exceptID int64) error {
	fields := map[string]string{}

	taken, err := products.ExistsBySlug(ctx, form.Slug, exceptID)
	if err != nil {
		return errDB()
	}
	if taken {
		fields["slug"] = "The slug has already been taken."
	}

	taken, err = products.ExistsBySKU(ctx, form.SKU, exceptID)
	if err != nil {
		return errDB()
	}
	if taken {
		fields["sku"] = "The sku has already been taken."
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func persistProductError(err error) error {
	if errors.Is(err, repo.ErrConflict) {
		return NewHTTPError(http.StatusConflict, "product already exists")
	}
	return errDB()
}

// 「誰が」「何を」「どの対象に」「どう変えたか」を残す
func writeAudit(
	ctx context.Context,
	audits repo.AuditLogRepository,
	actorID int64,
	action model.AuditAction,
	productID int64,
	before *model.Product,
	after *model.Product,
) error {
	beforeJSON, err := snapshotJSON(before)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	afterJSON, err := snapshotJSON(after)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := audits.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
	}); err != nil {
		return errDB()
	}
	return nil
}

func snapshotJSON(p *model.Product) (string, error) {
	if p == nil {
		return "", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
