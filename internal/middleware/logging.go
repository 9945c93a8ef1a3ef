package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/logger"
	"github.com/appdotbuilder/souvia-ecommerce/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ハンドラが500を返したときの原因（error）
const CtxErrorKey = "handler_error"

// アクセスログ（1リクエスト1行）
func AccessLog(logg *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if logg == nil {
				return err
			}

			status := responseStatus(c, err)
			level := zerolog.InfoLevel
			if status >= http.StatusInternalServerError {
				level = zerolog.ErrorLevel
			}

			req := c.Request()
			event := logg.Event(req.Context(), level).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Int("status", status).
				Int64("duration_ms", time.Since(start).Milliseconds())
			if err != nil {
				event = event.Err(err)
			} else if cause, ok := c.Get(CtxErrorKey).(error); ok {
				event = event.Err(cause)
			}
			event.Msg("request.complete")
			return err
		}
	}
}

// ルート単位のリクエスト数と処理時間
func Metrics(m *metrics.Storefront) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			m.ObserveRequest(c.Request().Method, c.Path(), responseStatus(c, err), time.Since(start))
			return err
		}
	}
}

// エラーハンドラより前に見るので、返ったエラーからもステータスを拾う
func responseStatus(c echo.Context, err error) int {
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he.Code
		}
		if !c.Response().Committed {
			return http.StatusInternalServerError
		}
	}
	return c.Response().Status
}
