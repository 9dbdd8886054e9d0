package domain

import "errors"

// Domain errors (no external dependencies).
//
// Use cases return these as-is and wrap infrastructure failures with
// fmt.Errorf("...: %w", err); handlers map them to HTTP codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")

	// ErrOverpayment: approving the payment would push total_paid above the
	// invoice grand total. The payment stays pending for manual reconciliation.
	ErrOverpayment = errors.New("payment exceeds invoice balance due")

	// ErrPaymentFinalized: the payment is already approved or rejected.
	// Approved and rejected are terminal; no further transition exists.
	ErrPaymentFinalized = errors.New("payment decision is final")

	// ErrDependency: an external collaborator (object storage, document
	// classifier) failed. Advisory dependencies log and continue; primary
	// ones surface this to the caller.
	ErrDependency = errors.New("external dependency failed")
)
