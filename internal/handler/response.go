package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/appdotbuilder/souvia-ecommerce/internal/flash"
	"github.com/appdotbuilder/souvia-ecommerce/internal/middleware"
	"github.com/appdotbuilder/souvia-ecommerce/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// 422 の形（フィールド名 → メッセージ）
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// ページのprops。flashは直前のリダイレクトで積まれたもの。
type Page[T any] struct {
	Props T              `json:"props"`
	Flash *flash.Message `json:"flash"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status == http.StatusUnprocessableEntity && len(he.Fields) > 0 {
			return c.JSON(he.Status, ValidationErrorResponse{Message: he.Message, Errors: he.Fields})
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500（アクセスログに原因を残す）
	c.Set(middleware.CtxErrorKey, err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// flashを取り出してページを返す
func renderPage[T any](c echo.Context, store flash.Store, props T) error {
	msg, err := store.Pop(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		c.Set(middleware.CtxErrorKey, err)
		msg = nil
	}
	return c.JSON(http.StatusOK, Page[T]{Props: props, Flash: msg})
}

// flashを積んで303で移動
func redirectWithFlash(c echo.Context, store flash.Store, to string, msg flash.Message) error {
	if err := store.Put(c.Request().Context(), middleware.SessionID(c), msg); err != nil {
		c.Set(middleware.CtxErrorKey, err)
	}
	return c.Redirect(http.StatusSeeOther, to)
}

// Refererが同じホストならそこへ、違えばfallback
func backURL(c echo.Context, fallback string) string {
	ref := c.Request().Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != c.Request().Host {
		return fallback
	}
	if u.Path == "" {
		return fallback
	}
	// "//host" や "/\host" は別ホスト扱いになる
	if strings.HasPrefix(u.Path, "//") || strings.HasPrefix(u.Path, "/\\") {
		return fallback
	}
	return u.RequestURI()
}

// パスの :id を正の整数として読む
func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ?page（不正・未指定は1）
func queryPage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

//middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}
