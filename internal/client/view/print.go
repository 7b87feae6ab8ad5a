package view

import (
	"html/template"
	"io"
	"slices"
	"strings"

	"github.com/dmitrijs2005/roster/internal/client/models"
)

const (
	RowsPerColumn  = 30
	ColumnsPerPage = 2
	ItemsPerPage   = RowsPerColumn * ColumnsPerPage
)

// PrintRow is one line of a printed roster. Seq runs across all pages.
type PrintRow struct {
	Seq  int
	Name string
	Reg  string
	Page string
}

// PrintPage holds up to ColumnsPerPage columns of up to RowsPerColumn rows.
// Trailing columns may be empty.
type PrintPage struct {
	Columns [][]PrintRow
}

// PaginateAll lays out every record sorted by first name. The first column
// of a page is filled before the second.
func PaginateAll(records []models.Record) []PrintPage {
	sorted := slices.Clone(records)
	SortByFirstName(sorted)
	return Paginate(sorted)
}

// Paginate lays out records in the given order.
func Paginate(records []models.Record) []PrintPage {
	var pages []PrintPage
	for start := 0; start < len(records); start += ItemsPerPage {
		end := min(start+ItemsPerPage, len(records))
		chunk := records[start:end]

		page := PrintPage{Columns: make([][]PrintRow, ColumnsPerPage)}
		for i, r := range chunk {
			col := i / RowsPerColumn
			page.Columns[col] = append(page.Columns[col], PrintRow{
				Seq:  start + i + 1,
				Name: r.FullName(),
				Reg:  r.RegNumber,
				Page: r.PageNumber,
			})
		}
		pages = append(pages, page)
	}
	return pages
}

// ByRegistration returns the records printed for a single registration
// number: the list view with an exact registration filter.
func ByRegistration(records []models.Record, reg string) []models.Record {
	if strings.TrimSpace(reg) == "" {
		return nil
	}
	return Filter(records, ListOptions{Query: reg, RegOnly: true, Sort: SortRecent})
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; }
.print-page { display: flex; gap: 1cm; page-break-after: always; padding: 1cm; }
.print-page:last-child { page-break-after: auto; }
.print-column { flex: 1; }
.print-table { width: 100%; border-collapse: collapse; font-size: 11pt; }
.print-table th, .print-table td { border: 1px solid #000; padding: 2px 4px; }
.col-seq, .col-reg, .col-page { width: 3em; text-align: center; }
</style>
</head>
<body>
{{- range .Pages}}
<div class="print-page">
{{- range .Columns}}
<div class="print-column">
{{- if .}}
<table class="print-table">
<thead><tr><th class="col-seq">التسلسل</th><th class="col-name">الاسم الكامل</th><th class="col-reg">ق</th><th class="col-page">ص</th></tr></thead>
<tbody>
{{- range .}}
<tr><td class="col-seq">{{.Seq}}</td><td>{{.Name}}</td><td class="col-reg">{{.Reg}}</td><td class="col-page">{{.Page}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
</div>
{{- end}}
</div>
{{- end}}
</body>
</html>
`))

// RenderPrintHTML writes a printable right-to-left HTML document.
func RenderPrintHTML(w io.Writer, title string, pages []PrintPage) error {
	return printTemplate.Execute(w, struct {
		Title string
		Pages []PrintPage
	}{title, pages})
}
