// Package models defines the rows the roster server stores.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/roster/internal/common"
)

type Record struct {
	ID         string `db:"id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	RegNumber  string `db:"reg_number"`
	PageNumber string `db:"page_number"`
	Notes      string `db:"notes"`
	// CreatedAt is milliseconds since the epoch, as sent by the client.
	CreatedAt int64 `db:"created_at"`
}

// Normalize trims the text fields.
func (r Record) Normalize() Record {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.RegNumber = strings.TrimSpace(r.RegNumber)
	r.PageNumber = strings.TrimSpace(r.PageNumber)
	r.Notes = strings.TrimSpace(r.Notes)
	return r
}

// Validate reports missing required fields of a normalized record.
func (r Record) Validate() error {
	if r.FirstName == "" {
		return fmt.Errorf("%w: first name is required", common.ErrorValidation)
	}
	if r.RegNumber == "" {
		return fmt.Errorf("%w: registration number is required", common.ErrorValidation)
	}
	return nil
}
