package services

import "errors"

// Ledger error taxonomy. Handlers map these to HTTP statuses; anything else
// coming out of a service is a database failure and surfaces as a 500.
var (
	ErrNotFound            = errors.New("record not found")
	ErrForbidden           = errors.New("not authorized for this resource")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyApproved     = errors.New("enrollment already approved")
	ErrAlreadyEnrolled     = errors.New("student already enrolled in course")
	ErrAlreadyPaid         = errors.New("enrollment already paid out")
	ErrNotPending          = errors.New("enrollment is not pending")
)
