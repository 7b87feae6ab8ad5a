// Package common defines constants and sentinel errors shared by the roster
// client and server. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound   = errors.New("not found")
	ErrDuplicateKey = errors.New("a record with this registration number already exists on this page")

	// Validation errors.
	ErrorValidation  = errors.New("validation error")
	ErrBatchTooLarge = errors.New("batch too large")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
)
