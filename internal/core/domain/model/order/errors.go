package order

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrAlreadyCancelled  = errors.New("order is already cancelled")
	ErrNotCancellable    = errors.New("order is not cancellable")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// NotFoundError matches both ErrOrderNotFound and errs.ErrObjectNotFound.
type NotFoundError struct {
	OrderID kernel.UUID
}

func NewNotFoundError(orderID kernel.UUID) *NotFoundError {
	return &NotFoundError{OrderID: orderID}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOrderNotFound, e.OrderID)
}

func (e *NotFoundError) Unwrap() []error {
	return []error{ErrOrderNotFound, errs.ErrObjectNotFound}
}

type AlreadyCancelledError struct {
	OrderID kernel.UUID
}

func NewAlreadyCancelledError(orderID kernel.UUID) *AlreadyCancelledError {
	return &AlreadyCancelledError{OrderID: orderID}
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyCancelled, e.OrderID)
}

func (e *AlreadyCancelledError) Unwrap() error {
	return ErrAlreadyCancelled
}

// NotCancellableError is returned for orders that already shipped or were delivered.
type NotCancellableError struct {
	OrderID kernel.UUID
	Status  Status
}

func NewNotCancellableError(orderID kernel.UUID, status Status) *NotCancellableError {
	return &NotCancellableError{OrderID: orderID, Status: status}
}

func (e *NotCancellableError) Error() string {
	return fmt.Sprintf("%s: order %s is %s", ErrNotCancellable, e.OrderID, e.Status)
}

func (e *NotCancellableError) Unwrap() error {
	return ErrNotCancellable
}

type InvalidTransitionError struct {
	OrderID kernel.UUID
	From    Status
	To      Status
}

func NewInvalidTransitionError(orderID kernel.UUID, from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{OrderID: orderID, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: order %s cannot move from %s to %s", ErrInvalidTransition, e.OrderID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
