// Package errs provides the error categories shared by the fulfillment service.
//
// Each category follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrInvalidState, ErrForbidden, ...)
//   - a struct carrying the details of one failure
//   - constructors with and without a cause
//   - Unwrap returning the sentinel, so callers branch with errors.Is
//
// The HTTP adapter maps the sentinels to status codes; domain code never
// inspects messages.
package errs
