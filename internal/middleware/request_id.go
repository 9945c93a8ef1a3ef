package middleware

import (
	"github.com/appdotbuilder/souvia-ecommerce/internal/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func RequestID(logg *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			reqID := req.Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			if logg != nil {
				c.SetRequest(req.WithContext(logg.WithRequestID(req.Context(), reqID)))
			}
			return next(c)
		}
	}
}
