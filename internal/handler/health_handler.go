package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// GET /health-check
func RegisterHealthRoutes(e *echo.Echo, now func() time.Time) {
	e.GET("/health-check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:    "ok",
			Timestamp: now().UTC().Format(time.RFC3339),
		})
	})
}
