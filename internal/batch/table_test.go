package batch

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portscout/portscout/internal/model"
)

func TestSelectColumn(t *testing.T) {
	t.Parallel()

	header := []string{"name", "Location URL", "notes"}
	rows := [][]string{
		{"site a", "https://maps.app.goo.gl/a", "x"},
		{"site b", "35.6, 140.1"},
		{"site c", "https://maps.app.goo.gl/c", "y"},
	}

	t.Run("by header name", func(t *testing.T) {
		t.Parallel()
		inputs, err := SelectColumn(header, rows, "location url")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://maps.app.goo.gl/a", "35.6, 140.1", "https://maps.app.goo.gl/c"}, inputs)
	})

	t.Run("by column number", func(t *testing.T) {
		t.Parallel()
		inputs, err := SelectColumn(header, rows, "2")
		require.NoError(t, err)
		assert.Equal(t, "35.6, 140.1", inputs[1])
	})

	t.Run("default first column", func(t *testing.T) {
		t.Parallel()
		inputs, err := SelectColumn(header, rows, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"site a", "site b", "site c"}, inputs)
	})

	t.Run("short row pads empty", func(t *testing.T) {
		t.Parallel()
		inputs, err := SelectColumn(header, rows, "3")
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "", "y"}, inputs)
	})

	t.Run("unknown header", func(t *testing.T) {
		t.Parallel()
		_, err := SelectColumn(header, rows, "address")
		assert.Error(t, err)
	})

	t.Run("name selection without header", func(t *testing.T) {
		t.Parallel()
		_, err := SelectColumn(nil, rows, "address")
		assert.Error(t, err)
	})

	t.Run("column number out of range", func(t *testing.T) {
		t.Parallel()
		_, err := SelectColumn(header, rows, "0")
		assert.Error(t, err)
	})
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	coord := model.Coordinate{Lat: 35.611781, Lon: 140.11325}
	breakdown := model.Breakdown{
		Coordinate: coord,
		Total:      4.0,
		Findings:   []string{"stub"},
	}
	breakdown.Finalize()

	rows := []model.BatchRow{
		{Index: 0, Input: "35.611781, 140.113250", Coordinate: &coord, Breakdown: &breakdown},
		{Index: 1, Input: "nowhere", Err: "location not found"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"input", "latitude", "longitude", "score", "rank", "comment", "error"}, records[0])

	assert.Equal(t, "35.611781", records[1][1])
	assert.Equal(t, "140.113250", records[1][2])
	assert.Equal(t, "4.0", records[1][3])
	assert.Equal(t, "S", records[1][4])
	assert.Empty(t, records[1][6])

	assert.Equal(t, "nowhere", records[2][0])
	assert.Empty(t, records[2][1])
	assert.Equal(t, "-", records[2][4])
	assert.Equal(t, "location not found", records[2][6])
}
