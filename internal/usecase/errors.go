package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/appdotbuilder/souvia-ecommerce/internal/validator"
)

type HTTPError struct {
	Status  int
	Message string
	// 422のときだけ。jsonのフィールド名 → メッセージ
	Fields map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 入力エラー（422）
func NewValidationError(fields map[string]string) error {
	return &HTTPError{
		Status:  http.StatusUnprocessableEntity,
		Message: "The given data was invalid.",
		Fields:  fields,
	}
}

// 1項目だけの入力エラー
func NewFieldError(field string, message string) error {
	return NewValidationError(map[string]string{field: message})
}

// カートが空（ハンドラで/cartへリダイレクト）
var ErrEmptyCart = &HTTPError{Status: http.StatusBadRequest, Message: "Your cart is empty!"}

func errNotFound() error {
	return NewHTTPError(http.StatusNotFound, "not found")
}

func errDB() error {
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

// validator.Structの結果をHTTPErrorにする
func validate(s interface{}) error {
	err := validator.Struct(s)
	if err == nil {
		return nil
	}
	if fe, ok := validator.AsFieldErrors(err); ok {
		return NewValidationError(fe)
	}
	return NewHTTPError(http.StatusBadRequest, "invalid input")
}
