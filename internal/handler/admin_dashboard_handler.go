package handler

import (
	"net/http"

	"github.com/appdotbuilder/souvia-ecommerce/internal/config"
	"github.com/appdotbuilder/souvia-ecommerce/internal/middleware"
	"github.com/appdotbuilder/souvia-ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminDashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewAdminDashboardHandler(uc *usecase.DashboardUsecase) *AdminDashboardHandler {
	return &AdminDashboardHandler{uc: uc}
}

func (h *AdminDashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.JWTConfig) {
	e.GET("/admin", h.dashboard, middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
}

func (h *AdminDashboardHandler) dashboard(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
