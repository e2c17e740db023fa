// Package errs provides the shared error vocabulary of the shop service.
//
// Every error type follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Unwrap returning the sentinel, so callers classify errors without type switches
//
// Domain packages build their own typed errors (out of stock, invalid transition, ...)
// on top of these categories. The HTTP adapter maps the categories to status codes.
package errs
