package table

import "strings"

// Row is one body row of an assembled table. SourceIndex is the row's
// position in the raw grid, so overlay lookups survive filtering.
type Row struct {
	SourceIndex int
	Segments    []string
}

// Table is the normalized form of one header column
type Table struct {
	Title          string
	SubColumnCount int
	Rows           []Row
}

// BodyRows returns the segment matrix without source indices
func (t Table) BodyRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Segments
	}
	return out
}

// Options controls assembly
type Options struct {
	Mode Mode
	// DropEmptyRows removes rows whose segments are all blank (lineup pages)
	DropEmptyRows bool
}

// Assemble produces one Table per header, in header order. Rows shorter
// than the header list are read as empty cells. Inputs are not modified.
func Assemble(headers []string, rows [][]string, opts Options) []Table {
	tables := make([]Table, 0, len(headers))
	for col, title := range headers {
		tables = append(tables, assembleColumn(title, col, rows, opts))
	}
	return tables
}

func assembleColumn(title string, col int, rows [][]string, opts Options) Table {
	decoded := make([][]string, len(rows))
	width := 1
	for r, row := range rows {
		decoded[r] = Decode(cellAt(row, col), opts.Mode)
		if len(decoded[r]) > width {
			width = len(decoded[r])
		}
	}
	if opts.Mode == FixedTriplet {
		width = TripletWidth
	}

	t := Table{Title: title, SubColumnCount: width, Rows: make([]Row, 0, len(rows))}
	for r, segments := range decoded {
		if opts.DropEmptyRows && allBlank(segments) {
			continue
		}
		t.Rows = append(t.Rows, Row{SourceIndex: r, Segments: pad(segments, width)})
	}
	return t
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func pad(segments []string, width int) []string {
	if len(segments) >= width {
		return segments
	}
	out := make([]string, width)
	copy(out, segments)
	return out
}

func allBlank(segments []string) bool {
	for _, s := range segments {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
