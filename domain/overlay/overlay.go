package overlay

// Map holds the image filenames attached to a table grid. An empty string
// means no image. Body rows are keyed by source row index, not by the
// position a row ends up at after filtering.
type Map struct {
	HeaderImages []string
	BodyImages   [][]string
}

// Build truncates or pads the header images and every body image row to
// headerCount entries
func Build(headerImages []string, bodyImages [][]string, headerCount int) Map {
	if headerCount < 0 {
		headerCount = 0
	}
	m := Map{
		HeaderImages: fit(headerImages, headerCount),
		BodyImages:   make([][]string, len(bodyImages)),
	}
	for i, row := range bodyImages {
		m.BodyImages[i] = fit(row, headerCount)
	}
	return m
}

func fit(in []string, n int) []string {
	out := make([]string, n)
	copy(out, in)
	return out
}

// Header returns the image filename for a header column
func (m Map) Header(col int) string {
	if col < 0 || col >= len(m.HeaderImages) {
		return ""
	}
	return m.HeaderImages[col]
}

// Body returns the image filename for a source row and column
func (m Map) Body(sourceIndex, col int) string {
	if sourceIndex < 0 || sourceIndex >= len(m.BodyImages) {
		return ""
	}
	row := m.BodyImages[sourceIndex]
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Filenames lists distinct non-empty filenames, headers first, in the order
// they first appear
func (m Map) Filenames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, name := range m.HeaderImages {
		add(name)
	}
	for _, row := range m.BodyImages {
		for _, name := range row {
			add(name)
		}
	}
	return names
}
