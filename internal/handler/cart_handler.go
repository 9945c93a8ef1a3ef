package handler

import (
	"net/http"

	"github.com/appdotbuilder/souvia-ecommerce/internal/flash"
	"github.com/appdotbuilder/souvia-ecommerce/internal/middleware"
	"github.com/appdotbuilder/souvia-ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP（セッション単位）
type CartHandler struct {
	uc    *usecase.CartUsecase
	flash flash.Store
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, flashes flash.Store) *CartHandler {
	return &CartHandler{uc: uc, flash: flashes}
}

// /cart, /cart/{id} を登録。limitはPOSTだけに掛ける。
func (h *CartHandler) RegisterRoutes(e *echo.Echo, limit ...echo.MiddlewareFunc) {
	e.GET("/cart", h.getCart)
	e.POST("/cart", h.addToCart, limit...)
	e.PATCH("/cart/:id", h.patchItem)
	e.DELETE("/cart/:id", h.deleteItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.GetCart(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return renderPage(c, h.flash, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req usecase.AddCartInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if _, err := h.uc.Add(c.Request().Context(), middleware.SessionID(c), req); err != nil {
		return writeError(c, err)
	}

	return redirectWithFlash(c, h.flash, backURL(c, "/cart"), flash.Success("Product added to cart!"))
}

func (h *CartHandler) patchItem(c echo.Context) error {
	itemID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	var req usecase.UpdateCartItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateQuantity(c.Request().Context(), middleware.SessionID(c), itemID, req); err != nil {
		return writeError(c, err)
	}

	return redirectWithFlash(c, h.flash, backURL(c, "/cart"), flash.Success("Cart updated!"))
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	itemID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	if err := h.uc.Remove(c.Request().Context(), middleware.SessionID(c), itemID); err != nil {
		return writeError(c, err)
	}

	return redirectWithFlash(c, h.flash, backURL(c, "/cart"), flash.Success("Item removed from cart!"))
}
