package middleware

import (
	"net/http"
	"time"

	"github.com/appdotbuilder/souvia-ecommerce/internal/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "storefront_session"
	CtxSessionIDKey   = "session_id" // string

	sessionMaxAge = 30 * 24 * time.Hour
)

// Cookieのセッションを用意する。無い・壊れているときは新しく発行。
func Session(logg *logger.Logger, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				if _, err := uuid.Parse(ck.Value); err == nil {
					sessionID = ck.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(sessionMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionIDKey, sessionID)
			if logg != nil {
				req := c.Request()
				c.SetRequest(req.WithContext(logg.WithSessionID(req.Context(), sessionID)))
			}
			return next(c)
		}
	}
}

// SessionID はSessionミドルウェアが入れた値。無ければ空。
func SessionID(c echo.Context) string {
	id, _ := c.Get(CtxSessionIDKey).(string)
	return id
}
