package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/roster/internal/client/router"
	"github.com/dmitrijs2005/roster/internal/client/services"
	"github.com/dmitrijs2005/roster/internal/client/view"
	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/filex"
	"github.com/dmitrijs2005/roster/internal/sheet"
)

const printFileName = "roster_print.html"

var errNeedsTerminal = errors.New("this command needs an interactive terminal")

// List applies list options and shows the list view.
//
//	list [query...] [-reg] [-sort recent|alphabetical]
func (a *App) List(ctx context.Context, args []string) error {
	opts := view.ListOptions{Sort: a.listOpts.Sort}

	var query []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-reg":
			opts.RegOnly = true
		case "-sort":
			if i+1 >= len(args) {
				return fmt.Errorf("%w: -sort needs a value", common.ErrorValidation)
			}
			i++
			s, err := view.ParseSortOrder(args[i])
			if err != nil {
				return fmt.Errorf("%w: %v", common.ErrorValidation, err)
			}
			opts.Sort = s
		default:
			query = append(query, args[i])
		}
	}
	opts.Query = strings.Join(query, " ")

	a.listOpts = opts
	return a.router.Navigate(ctx, router.ViewList, "")
}

// Delete removes one record after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}
	id := args[0]

	rec, ok := a.store.Get(id)
	if !ok {
		return fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
	}

	yes, err := Confirm(a.reader, fmt.Sprintf("Delete %s (reg %s, page %s)?", rec.FullName(), rec.RegNumber, rec.PageNumber), a.out)
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.store.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Record deleted.")

	if cur := a.router.Current(); cur.ID == id {
		return a.router.Navigate(ctx, router.ViewList, "")
	}
	return nil
}

// DeleteAll wipes the roster after two confirmations.
func (a *App) DeleteAll(ctx context.Context) error {
	if !a.interactive {
		return errNeedsTerminal
	}

	n := a.store.Len()
	if n == 0 {
		fmt.Fprintln(a.out, "The roster is already empty.")
		return nil
	}

	for _, q := range []string{
		fmt.Sprintf("Delete all %d records?", n),
		"This cannot be undone. Are you sure?",
	} {
		yes, err := Confirm(a.reader, q, a.out)
		if err != nil {
			return err
		}
		if !yes {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}

	if err := a.store.DeleteAll(ctx); err != nil {
		fmt.Fprintf(a.out, "Delete failed; %d records remain.\n", a.store.Len())
		return err
	}

	fmt.Fprintf(a.out, "Deleted %d records.\n", n)
	return a.router.Navigate(ctx, router.ViewList, "")
}

// Import adds the rows of an xlsx file.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: import <file.xlsx>")
		return nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := sheet.Read(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	report, err := services.Import(ctx, a.store, rows)
	fmt.Fprintf(a.out, "Imported %d records, skipped %d duplicates.\n", report.Imported, report.Skipped)
	if err != nil {
		return err
	}

	a.logger.Info(ctx, "import finished", "file", args[0], "imported", report.Imported, "skipped", report.Skipped)
	return a.router.Navigate(ctx, router.ViewList, "")
}

// Export writes the roster to an xlsx file and, when configured, uploads it.
func (a *App) Export(ctx context.Context, args []string) error {
	path := filepath.Join(a.config.ExportDir, sheet.ExportFileName)
	if len(args) > 0 {
		path = args[0]
	}

	var buf bytes.Buffer
	if err := sheet.Write(&buf, a.store.Records(), a.loc); err != nil {
		return err
	}
	if err := filex.WriteAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d records to %s\n", a.store.Len(), path)

	if a.uploader == nil {
		return nil
	}

	link, err := a.uploader.Upload(ctx, filepath.Base(path), buf.Bytes())
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	fmt.Fprintf(a.out, "Download link (valid until %s):\n%s\n", link.ExpiresAt.In(a.loc).Format("15:04"), link.URL)
	return nil
}

// Print writes printable pages to an HTML file: every record sorted by
// first name, or only the records of one registration number.
func (a *App) Print(ctx context.Context, args []string) error {
	records := a.store.Records()
	title := "سجل الطلاب"
	name := printFileName

	var pages []view.PrintPage
	if len(args) > 0 {
		reg := args[0]
		matched := view.ByRegistration(records, reg)
		if len(matched) == 0 {
			fmt.Fprintf(a.out, "No records for registration %s.\n", reg)
			return nil
		}
		view.RenderList(a.out, matched, reg)
		pages = view.Paginate(matched)
		title = fmt.Sprintf("%s - %s", title, reg)
		name = fmt.Sprintf("roster_print_%s.html", safeFileName(reg))
	} else {
		if len(records) == 0 {
			fmt.Fprintln(a.out, "Nothing to print: the roster is empty.")
			return nil
		}
		pages = view.PaginateAll(records)
	}

	var buf bytes.Buffer
	if err := view.RenderPrintHTML(&buf, title, pages); err != nil {
		return err
	}

	path := filepath.Join(a.config.ExportDir, name)
	if err := filex.WriteAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %d page(s) to %s\n", len(pages), path)
	return nil
}

// Check runs the live name check outside of a form.
func (a *App) Check(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: check <first> [last]")
		return nil
	}
	last := ""
	if len(args) > 1 {
		last = strings.Join(args[1:], " ")
	}

	matches := a.store.CheckName(args[0], last, "")
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No similar names.")
		return nil
	}
	return view.RenderMatches(a.out, matches)
}

func safeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
}
