package service

import "errors"

// ErrInsufficientStock is only surfaced under the "reject" stock policy.
// Under the default "clamp" policy a short deduction is not an error: the
// processor deducts what is available and records the applied amount.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrOrderFailed hides storage-level failures from callers: an order either
// fully commits or fully rolls back, and the client only learns which.
var ErrOrderFailed = errors.New("order could not be completed")

// ErrValidation marks input that failed a semantic check handlers cannot
// express in validator tags (bad unit, dimension mismatch, duplicate name).
// Handlers map it to 422.
var ErrValidation = errors.New("validation failed")

// ErrNotFound maps to 404 in handlers.
var ErrNotFound = errors.New("not found")
