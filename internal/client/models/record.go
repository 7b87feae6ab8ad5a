// Package models defines the client-side roster types.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/roster/internal/common"
)

// Record is one student entry in the roster.
type Record struct {
	// ID is assigned by the persistence backend on creation and never changes.
	ID string

	FirstName  string
	LastName   string
	RegNumber  string
	PageNumber string
	Notes      string

	// CreatedAt is the creation time in milliseconds since the epoch.
	// It is set once and is the default sort key (newest first).
	CreatedAt int64
}

// Key returns the composite key that must be unique across the roster.
func (r Record) Key() Key {
	return Key{RegNumber: r.RegNumber, PageNumber: r.PageNumber}
}

// FullName renders the name the way rosters print it: "First / Last".
func (r Record) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " / " + r.LastName
}

// Key is the (registration number, page number) pair.
type Key struct {
	RegNumber  string
	PageNumber string
}

// RecordInput holds the user-editable fields of a record.
type RecordInput struct {
	FirstName  string
	LastName   string
	RegNumber  string
	PageNumber string
	Notes      string
}

// Normalize trims every field.
func (in RecordInput) Normalize() RecordInput {
	return RecordInput{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		RegNumber:  strings.TrimSpace(in.RegNumber),
		PageNumber: strings.TrimSpace(in.PageNumber),
		Notes:      strings.TrimSpace(in.Notes),
	}
}

// Validate reports missing required fields. It expects normalized input.
func (in RecordInput) Validate() error {
	if in.FirstName == "" {
		return fmt.Errorf("%w: first name is required", common.ErrorValidation)
	}
	if in.RegNumber == "" {
		return fmt.Errorf("%w: registration number is required", common.ErrorValidation)
	}
	return nil
}

// Key returns the composite key of the input.
func (in RecordInput) Key() Key {
	return Key{RegNumber: in.RegNumber, PageNumber: in.PageNumber}
}

// Apply copies the editable fields onto r, leaving ID and CreatedAt alone.
func (in RecordInput) Apply(r Record) Record {
	r.FirstName = in.FirstName
	r.LastName = in.LastName
	r.RegNumber = in.RegNumber
	r.PageNumber = in.PageNumber
	r.Notes = in.Notes
	return r
}

// Input extracts the editable fields of r.
func (r Record) Input() RecordInput {
	return RecordInput{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		RegNumber:  r.RegNumber,
		PageNumber: r.PageNumber,
		Notes:      r.Notes,
	}
}
