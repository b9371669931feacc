package text

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"teamcomp/app"
)

// RenderPage writes a page as plain-text tables, one per header column
func RenderPage(w io.Writer, page app.Page) error {
	switch page.State {
	case app.StateError:
		_, err := fmt.Fprintf(w, "Error: %s\n", page.Error)
		return err
	case app.StateReady:
	default:
		_, err := fmt.Fprintln(w, "Loading…")
		return err
	}

	title := page.Title
	if title == "" {
		title = page.Config.Name
	}
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	if page.LastUpdated != "" {
		if _, err := fmt.Fprintf(w, "Last updated: %s\n", page.LastUpdated); err != nil {
			return err
		}
	}

	for _, view := range page.Tables {
		if _, err := fmt.Fprintf(w, "\n%s\n", view.Title); err != nil {
			return err
		}
		if err := renderTable(w, view); err != nil {
			return fmt.Errorf("render %q: %w", view.Title, err)
		}
	}
	return nil
}

func renderTable(w io.Writer, view app.TableView) error {
	header := headerRow(view)
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}

	rows := make([][]string, len(view.Rows))
	for i, row := range view.Rows {
		rows[i] = row.Segments
	}

	table := tablewriter.NewWriter(w)
	table.Header(cells...)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func headerRow(view app.TableView) []string {
	if len(view.SubHeaders) == view.SubColumnCount {
		return view.SubHeaders
	}
	header := make([]string, view.SubColumnCount)
	for i := range header {
		header[i] = fmt.Sprintf("#%d", i+1)
	}
	return header
}
