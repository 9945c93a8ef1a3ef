package server

import (
	"github.com/appdotbuilder/souvia-ecommerce/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, d Deps) {
	limit := rateLimiter(d.Config.Store)

	handler.RegisterHealthRoutes(e, d.Now)
	if d.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	//公開
	handler.NewStorefrontHandler(d.Catalog, d.Flash).RegisterRoutes(e)
	handler.NewCartHandler(d.Cart, d.Flash).RegisterRoutes(e, limit)
	handler.NewCheckoutHandler(d.Orders, d.Flash).RegisterRoutes(e, limit)

	//管理（JWT + ADMIN）
	handler.NewAdminDashboardHandler(d.Dashboard).RegisterRoutes(e, d.Config.JWT)
	handler.NewAdminProductHandler(d.Products).RegisterRoutes(e, d.Config.JWT)
}
