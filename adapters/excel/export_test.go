package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"teamcomp/app"
)

func readyPage() app.Page {
	return app.Page{
		Config: app.PageConfig{Slug: "giovanni"},
		State:  app.StateReady,
		Title:  "Giovanni Counters",
		Tables: []app.TableView{
			{
				Title:          "Persian",
				SubColumnCount: 3,
				SubHeaders:     app.TripletSubHeaders,
				Rows: []app.RowView{
					{SourceIndex: 1, Segments: []string{"Mewtwo", "Psycho Cut", "Shadow Ball"}, ImageURL: "https://cdn/mewtwo.png"},
				},
			},
			{
				Title:          "Kingler / Rhyperior",
				SubColumnCount: 3,
				SubHeaders:     app.TripletSubHeaders,
				Rows: []app.RowView{
					{Segments: []string{"Zarude", "Vine Whip", "Power Whip"}},
				},
			},
		},
	}
}

func TestExport_WritesOneSheetPerTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, readyPage()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Persian", "Kingler _ Rhyperior"}, f.GetSheetList())

	rows, err := f.GetRows("Persian")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Persian"}, rows[0])
	assert.Equal(t, []string{"Pokémon", "Fast Move", "Charged Move", "Image"}, rows[1])
	assert.Equal(t, []string{"Mewtwo", "Psycho Cut", "Shadow Ball", "https://cdn/mewtwo.png"}, rows[2])

	rows, err = f.GetRows("Kingler _ Rhyperior")
	require.NoError(t, err)
	assert.Equal(t, app.TripletSubHeaders, rows[1], "no image column without images")
	assert.Equal(t, []string{"Zarude", "Vine Whip", "Power Whip"}, rows[2])
}

func TestNewWorkbook_RejectsUnreadyPage(t *testing.T) {
	_, err := NewWorkbook(app.Page{Config: app.PageConfig{Slug: "arlo"}, State: app.StateError})
	assert.Error(t, err)
}

func TestNewWorkbook_EmptyPageKeepsDefaultSheet(t *testing.T) {
	f, err := NewWorkbook(app.Page{State: app.StateReady})
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 1)
}

func TestSheetName(t *testing.T) {
	used := make(map[string]int)

	assert.Equal(t, "Tier 1", sheetName("Tier 1", 0, used))
	assert.Equal(t, "tier 1 (2)", sheetName("tier 1", 1, used))
	assert.Equal(t, "Table 3", sheetName("  ", 2, used))
	assert.Equal(t, "a_b_c_d", sheetName("a:b?c*d", 3, used))

	long := sheetName("A very long header title that exceeds the limit", 4, used)
	assert.LessOrEqual(t, len([]rune(long)), maxSheetName)
}

func TestExport_ImageHeaderWithoutSubHeaders(t *testing.T) {
	page := app.Page{
		Config: app.PageConfig{Slug: "data"},
		State:  app.StateReady,
		Tables: []app.TableView{{
			Title:          "Notes",
			SubColumnCount: 2,
			Rows: []app.RowView{
				{Segments: []string{"one", "two"}, ImageURL: "https://cdn/one.png"},
			},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, page))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Notes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"", "", "Image"}, rows[1])
	assert.Equal(t, []string{"one", "two", "https://cdn/one.png"}, rows[2])
}
