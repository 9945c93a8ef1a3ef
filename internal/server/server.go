package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/config"
	"github.com/appdotbuilder/souvia-ecommerce/internal/flash"
	"github.com/appdotbuilder/souvia-ecommerce/internal/handler"
	"github.com/appdotbuilder/souvia-ecommerce/internal/logger"
	"github.com/appdotbuilder/souvia-ecommerce/internal/metrics"
	mw "github.com/appdotbuilder/souvia-ecommerce/internal/middleware"
	"github.com/appdotbuilder/souvia-ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// サーバが必要とする部品
type Deps struct {
	Config   config.Config
	Logger   *logger.Logger
	Metrics  *metrics.Storefront
	Gatherer prometheus.Gatherer
	Flash    flash.Store

	Catalog   *usecase.CatalogUsecase
	Cart      *usecase.CartUsecase
	Orders    *usecase.OrderUsecase
	Dashboard *usecase.DashboardUsecase
	Products  *usecase.ProductUsecase

	Now func() time.Time
}

// New はミドルウェアとルートを組んだechoを返す
func New(d Deps) *echo.Echo {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Server.ReadTimeout = d.Config.App.ReadTimeout
	e.Server.WriteTimeout = d.Config.App.WriteTimeout

	e.Use(middleware.Recover())
	e.Use(mw.RequestID(d.Logger))
	e.Use(mw.AccessLog(d.Logger))
	e.Use(mw.Metrics(d.Metrics))
	e.Use(middleware.CORSWithConfig(corsConfig(d.Config.App)))
	e.Use(mw.Session(d.Logger, d.Config.App.IsProd()))

	RegisterRoutes(e, d)
	return e
}

func corsConfig(app config.AppConfig) middleware.CORSConfig {
	cfg := middleware.DefaultCORSConfig
	if app.FEURL != "" {
		cfg.AllowOrigins = []string{app.FEURL}
		cfg.AllowCredentials = true
	}
	return cfg
}

// POST /cart と /checkout 用のIPごとの制限
func rateLimiter(store config.StoreConfig) echo.MiddlewareFunc {
	if store.RateLimitRPS <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(store.RateLimitRPS),
				Burst:     store.RateLimitBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, handler.ErrorResponse{Error: "forbidden"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, handler.ErrorResponse{Error: "rate limit exceeded"})
		},
	})
}

// echoのエラーも {"error": "..."} にそろえる
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(status)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, handler.ErrorResponse{Error: msg})
}

// Run はctxが終わるまで待ち、終わったらgracefulに止める
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
