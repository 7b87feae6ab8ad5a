package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"github.com/dmitrijs2005/roster/internal/client/router"
	"github.com/dmitrijs2005/roster/internal/client/view"
	"github.com/dmitrijs2005/roster/internal/common"
)

func (a *App) renderList(ctx context.Context, _ string) error {
	records := a.store.Records()
	if err := view.RenderStats(a.out, view.ComputeStats(records)); err != nil {
		return err
	}
	return view.RenderList(a.out, view.Filter(records, a.listOpts), a.listOpts.Query)
}

func (a *App) renderAdd(ctx context.Context, _ string) error {
	fmt.Fprintln(a.out, "New record")

	first, err := GetRequiredText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	last, err := GetSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	view.RenderMatches(a.out, a.store.CheckName(first, last, ""))

	reg, err := GetRequiredText(a.reader, "Registration number", a.out)
	if err != nil {
		return err
	}
	page, err := GetRequiredText(a.reader, "Page number", a.out)
	if err != nil {
		return err
	}
	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return err
	}

	res, err := a.store.Add(ctx, models.RecordInput{
		FirstName:  first,
		LastName:   last,
		RegNumber:  reg,
		PageNumber: page,
		Notes:      notes,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Record added: %s\n", res.ID)
	a.warnCollisions(res.Collisions)
	return a.router.Navigate(ctx, router.ViewList, "")
}

func (a *App) renderDetail(ctx context.Context, id string) error {
	rec, ok := a.store.Get(id)
	if !ok {
		return fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
	}
	return view.RenderDetail(a.out, rec, a.loc)
}

func (a *App) renderEdit(ctx context.Context, id string) error {
	rec, ok := a.store.Get(id)
	if !ok {
		return fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
	}

	fmt.Fprintf(a.out, "Editing %s (press Enter to keep a value)\n", rec.FullName())

	in := rec.Input()
	fields := []struct {
		label string
		value *string
	}{
		{"First name", &in.FirstName},
		{"Last name", &in.LastName},
		{"Registration number", &in.RegNumber},
		{"Page number", &in.PageNumber},
		{"Notes", &in.Notes},
	}
	for _, f := range fields {
		v, err := GetTextWithDefault(a.reader, f.label, *f.value, a.out)
		if err != nil {
			return err
		}
		*f.value = v
	}
	if in.PageNumber == "" {
		return fmt.Errorf("%w: page number is required", common.ErrorValidation)
	}

	res, err := a.store.Update(ctx, id, in)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Record updated.")
	a.warnCollisions(res.Collisions)
	return a.router.Navigate(ctx, router.ViewDetail, id)
}

func (a *App) renderSettings(ctx context.Context, _ string) error {
	fmt.Fprintf(a.out, "Backend:      %s\n", a.config.Backend)
	if a.remote != nil {
		fmt.Fprintf(a.out, "Server:       %s (%s)\n", a.config.ServerEndpointAddr, a.currentMode())
	} else {
		fmt.Fprintf(a.out, "Database:     %s\n", a.config.DatabasePath)
	}
	fmt.Fprintf(a.out, "Records:      %d\n", a.store.Len())
	fmt.Fprintf(a.out, "Export dir:   %s\n", a.config.ExportDir)
	fmt.Fprintf(a.out, "Timezone:     %s\n", a.loc)
	if a.uploader != nil {
		fmt.Fprintf(a.out, "Upload:       s3://%s\n", a.config.S3.Bucket)
	} else {
		fmt.Fprintln(a.out, "Upload:       disabled")
	}
	fmt.Fprintf(a.out, "List sort:    %s\n", a.listOpts.Sort)
	return nil
}

func (a *App) warnCollisions(matches []models.Record) {
	if len(matches) == 0 {
		return
	}
	fmt.Fprintln(a.out, "Warning: a student with a similar name already exists.")
	view.RenderMatches(a.out, matches)
}
