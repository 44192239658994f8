package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
)

const decimalPlaces = 2

// CSV writes view with the kind's columns as header.
// Prices keep two decimals without separators; creation dates are UTC days.
func CSV(writer io.Writer, kind resource.Kind, view []record.Record) error {
	w := csv.NewWriter(writer)

	rows := make([][]string, 0, len(view)+1)
	rows = append(rows, kind.Columns)

	for _, r := range view {
		rows = append(rows, csvRow(kind, r))
	}

	// WriteAll flushes.
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	return nil
}

func csvRow(kind resource.Kind, r record.Record) []string {
	row := make([]string, len(kind.Columns))

	for i, column := range kind.Columns {
		switch {
		case column == kind.PriceField:
			if _, ok := r[column]; ok {
				row[i] = strconv.FormatFloat(r.Number(column), 'f', decimalPlaces, 64)
			}
		case column == record.FieldCreatedAt || column == record.FieldCreatedAtSnake:
			if t := r.CreatedAt(); !t.IsZero() {
				row[i] = t.UTC().Format(time.DateOnly)
			}
		default:
			row[i], _ = r.String(column)
		}
	}

	return row
}

// JSON writes view as an indented array. A nil view is written as [].
func JSON(writer io.Writer, view []record.Record) error {
	if view == nil {
		view = []record.Record{}
	}

	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to write JSON records: %w", err)
	}

	return nil
}
