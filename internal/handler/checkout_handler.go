package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/appdotbuilder/souvia-ecommerce/internal/flash"
	"github.com/appdotbuilder/souvia-ecommerce/internal/middleware"
	"github.com/appdotbuilder/souvia-ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チェックアウトと注文確認
type CheckoutHandler struct {
	uc    *usecase.OrderUsecase
	flash flash.Store
}

// DI
func NewCheckoutHandler(uc *usecase.OrderUsecase, flashes flash.Store) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, flash: flashes}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, limit ...echo.MiddlewareFunc) {
	e.GET("/checkout", h.summary)
	e.POST("/checkout", h.placeOrder, limit...)
	e.GET("/orders/:id", h.order)
}

func (h *CheckoutHandler) summary(c echo.Context) error {
	out, err := h.uc.CheckoutSummary(c.Request().Context(), middleware.SessionID(c))
	if errors.Is(err, usecase.ErrEmptyCart) {
		return redirectWithFlash(c, h.flash, "/cart", flash.Error(usecase.ErrEmptyCart.Message))
	}
	if err != nil {
		return writeError(c, err)
	}
	return renderPage(c, h.flash, out)
}

func (h *CheckoutHandler) placeOrder(c echo.Context) error {
	var form usecase.CheckoutForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), middleware.SessionID(c), form)
	if errors.Is(err, usecase.ErrEmptyCart) {
		return redirectWithFlash(c, h.flash, "/cart", flash.Error(usecase.ErrEmptyCart.Message))
	}
	if err != nil {
		return writeError(c, err)
	}

	return redirectWithFlash(c, h.flash, "/orders/"+strconv.FormatInt(order.ID, 10), flash.Success("Order placed successfully!"))
}

func (h *CheckoutHandler) order(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return renderPage(c, h.flash, out)
}
