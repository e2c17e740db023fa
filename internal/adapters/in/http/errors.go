package http

import (
	"errors"
	"net/http"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps handler errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrOutOfStock),
		errors.Is(err, order.ErrAlreadyCancelled),
		errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the mapped status. Internal errors are logged
// and replaced by fallback.
func (s *Server) respondError(ctx echo.Context, err error, fallback string) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", ctx.Path()).Error(fallback)
		message = fallback
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
