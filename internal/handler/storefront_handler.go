package handler

import (
	"net/http"

	"github.com/appdotbuilder/souvia-ecommerce/internal/flash"
	"github.com/appdotbuilder/souvia-ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// トップ・商品一覧・商品詳細
type StorefrontHandler struct {
	uc    *usecase.CatalogUsecase
	flash flash.Store
}

// DI
func NewStorefrontHandler(uc *usecase.CatalogUsecase, flashes flash.Store) *StorefrontHandler {
	return &StorefrontHandler{uc: uc, flash: flashes}
}

func (h *StorefrontHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.home)
	e.GET("/products", h.list)
	e.GET("/products/:slug", h.detail)
}

func (h *StorefrontHandler) home(c echo.Context) error {
	out, err := h.uc.Home(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return renderPage(c, h.flash, out)
}

func (h *StorefrontHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:         queryPage(c),
		CategorySlug: c.QueryParam("category"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return renderPage(c, h.flash, out)
}

func (h *StorefrontHandler) detail(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	out, err := h.uc.GetProduct(c.Request().Context(), slug)
	if err != nil {
		return writeError(c, err)
	}
	return renderPage(c, h.flash, out)
}
