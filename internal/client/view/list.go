// Package view turns roster records into what the client shows: filtered
// and sorted lists, dashboard counters, record details, name-check hints and
// printable pages.
package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortOrder string

const (
	SortRecent       SortOrder = "recent"
	SortAlphabetical SortOrder = "alphabetical"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortRecent:
		return SortRecent, nil
	case SortAlphabetical:
		return SortAlphabetical, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// ListOptions controls Filter.
type ListOptions struct {
	// Query is matched case-insensitively. Empty matches everything.
	Query string
	// RegOnly requires the registration number to equal Query instead of
	// matching any name or registration substring.
	RegOnly bool
	Sort    SortOrder
}

// Filter returns the records matching opts in the requested order. The input
// slice is not modified.
func Filter(records []models.Record, opts ListOptions) []models.Record {
	q := strings.ToLower(strings.TrimSpace(opts.Query))

	result := make([]models.Record, 0, len(records))
	for _, r := range records {
		if q == "" || matches(r, q, opts.RegOnly) {
			result = append(result, r)
		}
	}

	if opts.Sort == SortAlphabetical {
		SortByFirstName(result)
	} else {
		slices.SortStableFunc(result, func(a, b models.Record) int {
			switch {
			case a.CreatedAt > b.CreatedAt:
				return -1
			case a.CreatedAt < b.CreatedAt:
				return 1
			}
			return 0
		})
	}
	return result
}

func matches(r models.Record, q string, regOnly bool) bool {
	if regOnly {
		return strings.ToLower(r.RegNumber) == q
	}
	return strings.Contains(strings.ToLower(r.FirstName), q) ||
		strings.Contains(strings.ToLower(r.LastName), q) ||
		strings.Contains(strings.ToLower(r.RegNumber), q)
}

// SortByFirstName orders records by first name using Arabic collation rules,
// which also give a sensible order for Latin names.
func SortByFirstName(records []models.Record) {
	c := collate.New(language.Arabic, collate.IgnoreCase)
	slices.SortStableFunc(records, func(a, b models.Record) int {
		return c.CompareString(a.FirstName, b.FirstName)
	})
}

// Stats are the dashboard counters.
type Stats struct {
	// UniqueStudents counts distinct trimmed registration numbers.
	UniqueStudents int
	TotalRecords   int
	// UsedPages counts distinct non-empty trimmed page numbers.
	UsedPages int
}

func ComputeStats(records []models.Record) Stats {
	regs := make(map[string]struct{}, len(records))
	pages := make(map[string]struct{})
	for _, r := range records {
		regs[strings.TrimSpace(r.RegNumber)] = struct{}{}
		if p := strings.TrimSpace(r.PageNumber); p != "" {
			pages[p] = struct{}{}
		}
	}
	return Stats{
		UniqueStudents: len(regs),
		TotalRecords:   len(records),
		UsedPages:      len(pages),
	}
}
