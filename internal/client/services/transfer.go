package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"github.com/dmitrijs2005/roster/internal/common"
)

// RecordAdder is the part of the roster store that import needs.
type RecordAdder interface {
	Add(ctx context.Context, in models.RecordInput) (Result, error)
}

// ImportReport counts what an import did.
type ImportReport struct {
	Imported int
	Skipped  int
}

// Import adds rows one at a time, in order. Rows lacking a first name, last
// name or registration number are ignored. Rows whose registration and page
// number are already taken (including by an earlier row of the same import)
// are counted as skipped. Any other failure stops the import; the report
// then covers the rows processed so far.
func Import(ctx context.Context, store RecordAdder, rows []models.RecordInput) (ImportReport, error) {
	var report ImportReport

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if strings.TrimSpace(row.FirstName) == "" ||
			strings.TrimSpace(row.LastName) == "" ||
			strings.TrimSpace(row.RegNumber) == "" {
			continue
		}

		_, err := store.Add(ctx, row)
		switch {
		case err == nil:
			report.Imported++
		case errors.Is(err, common.ErrDuplicateKey):
			report.Skipped++
		default:
			return report, err
		}
	}

	return report, nil
}
