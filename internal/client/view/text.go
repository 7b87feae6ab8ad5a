package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"github.com/dmitrijs2005/roster/internal/timex"
)

// MaxNameMatches is how many similar names the live check lists before
// summarizing the rest.
const MaxNameMatches = 5

// RenderStats writes the dashboard counters on one line.
func RenderStats(w io.Writer, s Stats) error {
	_, err := fmt.Fprintf(w, "students: %d | records: %d | pages used: %d\n",
		s.UniqueStudents, s.TotalRecords, s.UsedPages)
	return err
}

// RenderList writes one row per record. An empty list is reported with a
// hint that depends on whether a query was active.
func RenderList(w io.Writer, records []models.Record, query string) error {
	if len(records) == 0 {
		msg := "no records yet"
		if strings.TrimSpace(query) != "" {
			msg = "no matching records"
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tREG\tPAGE\tID")
	for i, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, r.FullName(), r.RegNumber, r.PageNumber, r.ID)
	}
	return tw.Flush()
}

// RenderDetail writes every field of r. Notes are only shown when present.
func RenderDetail(w io.Writer, r models.Record, loc *time.Location) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
	fmt.Fprintf(tw, "First name:\t%s\n", r.FirstName)
	fmt.Fprintf(tw, "Last name:\t%s\n", r.LastName)
	fmt.Fprintf(tw, "Reg number:\t%s\n", r.RegNumber)
	fmt.Fprintf(tw, "Page number:\t%s\n", r.PageNumber)
	fmt.Fprintf(tw, "Added:\t%s\n", timex.FormatArabicDate(r.CreatedAt, loc))
	if r.Notes != "" {
		fmt.Fprintf(tw, "Notes:\t%s\n", r.Notes)
	}
	return tw.Flush()
}

// RenderMatches writes the name-check hint: a count, the first
// MaxNameMatches matches and a summary line for the rest. Nothing is written
// when there are no matches.
func RenderMatches(w io.Writer, matches []models.Record) error {
	if len(matches) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "similar names (%d):\n", len(matches))
	for i, r := range matches {
		if i == MaxNameMatches {
			fmt.Fprintf(&b, "  ...and %d others\n", len(matches)-MaxNameMatches)
			break
		}
		fmt.Fprintf(&b, "  %s %s  reg: %s | page: %s\n", r.FirstName, r.LastName, r.RegNumber, r.PageNumber)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
