package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"teamcomp/app"
	"teamcomp/internal/errors"
)

// maxSheetName is Excel's limit on worksheet name length
const maxSheetName = 31

// imageColumnHeader labels the trailing image URL column
const imageColumnHeader = "Image"

// NewWorkbook lays a ready page out as a workbook with one sheet per table.
// The caller closes the returned file.
func NewWorkbook(page app.Page) (*excelize.File, error) {
	if page.State != app.StateReady {
		return nil, errors.InvalidInput(fmt.Sprintf("page %q is %s, not ready", page.Config.Slug, page.State))
	}

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)

	used := make(map[string]int)
	for i, view := range page.Tables {
		name := sheetName(view.Title, i, used)
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "create sheet %q", name)
		}
		if err := writeTable(f, name, view); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "write sheet %q", name)
		}
	}

	if len(page.Tables) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "remove default sheet")
		}
		f.SetActiveSheet(0)
	}
	return f, nil
}

// Export writes the workbook for page to w
func Export(w io.Writer, page app.Page) error {
	f, err := NewWorkbook(page)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, view app.TableView) error {
	row := 1
	if err := f.SetCellStr(sheet, "A1", view.Title); err != nil {
		return err
	}
	row++

	hasImages := false
	for _, r := range view.Rows {
		if r.ImageURL != "" {
			hasImages = true
			break
		}
	}

	if len(view.SubHeaders) > 0 || hasImages {
		header := view.SubHeaders
		if hasImages {
			header = make([]string, view.SubColumnCount, view.SubColumnCount+1)
			copy(header, view.SubHeaders)
			header = append(header, imageColumnHeader)
		}
		if err := setRow(f, sheet, row, header); err != nil {
			return err
		}
		row++
	}

	for _, r := range view.Rows {
		values := r.Segments
		if hasImages {
			values = append(append([]string{}, r.Segments...), r.ImageURL)
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

// sheetName derives a unique, Excel-safe worksheet name from a table title
func sheetName(title string, index int, used map[string]int) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(name, "'")
	if name == "" {
		name = fmt.Sprintf("Table %d", index+1)
	}
	name = truncateRunes(name, maxSheetName)

	key := strings.ToLower(name)
	if n := used[key]; n > 0 {
		suffix := fmt.Sprintf(" (%d)", n+1)
		name = truncateRunes(name, maxSheetName-len(suffix)) + suffix
	}
	used[key]++
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
