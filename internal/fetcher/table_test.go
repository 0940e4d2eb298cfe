package fetcher

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	input := "name,location\nport a, 35.61, 140.11\nport b,https://maps.app.goo.gl/x\n"
	header, rows, err := ReadCSV(strings.NewReader(input), CSVOptions{HasHeader: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "location"}, header)
	require.Len(t, rows, 2)
	// Fields are trimmed and variable field counts are allowed.
	assert.Equal(t, []string{"port a", "35.61", "140.11"}, rows[0])
	assert.Equal(t, []string{"port b", "https://maps.app.goo.gl/x"}, rows[1])
}

func TestReadCSVNoHeader(t *testing.T) {
	t.Parallel()

	header, rows, err := ReadCSV(strings.NewReader("a,b\nc,d\n"), CSVOptions{})
	require.NoError(t, err)
	assert.Nil(t, header)
	assert.Len(t, rows, 2)
}

func TestReadCSVTabDelimited(t *testing.T) {
	t.Parallel()

	_, rows, err := ReadCSV(strings.NewReader("x\ty\n1\t2\n"), CSVOptions{Delimiter: '\t'})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2"}, rows[1])
}

func writeTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, row := range rows {
		r := sheet.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}

	path := filepath.Join(t.TempDir(), "ports.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	t.Parallel()

	path := writeTestXLSX(t, [][]string{
		{"name", "location"},
		{"port a", "35.611781, 140.113250"},
		{"port b", "1 Chome Chuo, Chiba"},
	})

	header, rows, err := ReadXLSX(path, XLSXOptions{HasHeader: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "location"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, "35.611781, 140.113250", rows[0][1])
}

func TestReadXLSXSheetSelection(t *testing.T) {
	t.Parallel()

	path := writeTestXLSX(t, [][]string{{"only", "row"}})

	_, rows, err := ReadXLSX(path, XLSXOptions{SheetName: "Sheet1"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, _, err = ReadXLSX(path, XLSXOptions{SheetName: "Missing"})
	assert.Error(t, err)

	_, _, err = ReadXLSX(path, XLSXOptions{SheetIndex: 3})
	assert.Error(t, err)
}

func TestReadXLSXMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := ReadXLSX(filepath.Join(t.TempDir(), "absent.xlsx"), XLSXOptions{})
	assert.Error(t, err)
}
