package services

import (
	"strings"

	"github.com/dmitrijs2005/roster/internal/client/models"
)

// MatchNames returns the records whose names look like the candidate's,
// skipping excludeID. Comparison is case-insensitive on trimmed values.
//
// With an empty last name, any record whose first name starts with first
// matches. With a last name, the first name must be equal and the record's
// last name must start with last.
//
// The same matcher backs the non-blocking warning on add/update and the
// interactive check while a name is being typed.
func MatchNames(first, last string, records []models.Record, excludeID string) []models.Record {
	first = strings.ToLower(strings.TrimSpace(first))
	last = strings.ToLower(strings.TrimSpace(last))
	if first == "" {
		return nil
	}

	var matches []models.Record
	for _, r := range records {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		rFirst := strings.ToLower(strings.TrimSpace(r.FirstName))
		rLast := strings.ToLower(strings.TrimSpace(r.LastName))

		if last == "" {
			if strings.HasPrefix(rFirst, first) {
				matches = append(matches, r)
			}
			continue
		}
		if rFirst == first && strings.HasPrefix(rLast, last) {
			matches = append(matches, r)
		}
	}
	return matches
}

// FindKeyConflict returns the record already holding key, skipping
// excludeID.
func FindKeyConflict(key models.Key, records []models.Record, excludeID string) (models.Record, bool) {
	for _, r := range records {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if r.Key() == key {
			return r, true
		}
	}
	return models.Record{}, false
}
