package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPErrorはステータスとメッセージをそのままhandlerへ運ぶ
type HTTPError struct {
	Status  int
	Message string
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

// よく使うエラーのショートカット
func errValidation(msg string) error { return NewHTTPError(http.StatusBadRequest, msg) }
func errNotFound(msg string) error   { return NewHTTPError(http.StatusNotFound, msg) }
func errForbidden(msg string) error  { return NewHTTPError(http.StatusForbidden, msg) }
func errConflict(msg string) error   { return NewHTTPError(http.StatusConflict, msg) }
func errInternal() error             { return NewHTTPError(http.StatusInternalServerError, "db error") }
