package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/portscout/portscout/internal/model"
)

// SelectColumn picks the input column out of a parsed table. The column
// selector is either a 1-based column number or a header name matched
// case-insensitively. Header-name selection requires a header row.
func SelectColumn(header []string, rows [][]string, column string) ([]string, error) {
	idx, err := columnIndex(header, column)
	if err != nil {
		return nil, err
	}

	inputs := make([]string, 0, len(rows))
	for _, row := range rows {
		if idx < len(row) {
			inputs = append(inputs, row[idx])
		} else {
			inputs = append(inputs, "")
		}
	}
	return inputs, nil
}

func columnIndex(header []string, column string) (int, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		return 0, nil
	}

	if n, err := strconv.Atoi(column); err == nil {
		if n < 1 {
			return 0, eris.Errorf("batch: column number %d out of range", n)
		}
		return n - 1, nil
	}

	if len(header) == 0 {
		return 0, eris.Errorf("batch: column %q needs a header row", column)
	}
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			return i, nil
		}
	}
	return 0, eris.Errorf("batch: column %q not found in header %v", column, header)
}

// WriteCSV writes batch results as CSV, one row per input in input order.
func WriteCSV(w io.Writer, rows []model.BatchRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"input", "latitude", "longitude", "score", "rank", "comment", "error"}); err != nil {
		return eris.Wrap(err, "batch: write csv header")
	}

	for _, row := range rows {
		record := []string{row.Input, "", "", "", string(row.Rank()), "", row.Err}
		if row.Coordinate != nil {
			record[1] = strconv.FormatFloat(row.Coordinate.Lat, 'f', 6, 64)
			record[2] = strconv.FormatFloat(row.Coordinate.Lon, 'f', 6, 64)
		}
		if row.Breakdown != nil {
			record[3] = fmt.Sprintf("%.1f", row.Breakdown.Total)
			record[5] = row.Breakdown.Comment
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "batch: write csv row %d", row.Index)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "batch: flush csv")
}
