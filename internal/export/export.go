// Package export writes sampled paths and impulse trains as CSV, JSON or
// SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/lspline/internal/stoch"
)

// Column is one named series of a CSV table.
type Column struct {
	Name   string
	Series stoch.Series
}

// WriteCSV writes a time column followed by one column per series. The
// times of the first column are used; shorter columns leave empty cells.
func WriteCSV(w io.Writer, cols ...Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("export: no columns")
	}
	cw := csv.NewWriter(w)

	header := []string{"time"}
	rows := 0
	for _, c := range cols {
		header = append(header, c.Name)
		rows = max(rows, c.Series.Len())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	times := cols[0].Series.Times
	for i := 0; i < rows; i++ {
		row := make([]string, 0, len(header))
		if i < len(times) {
			row = append(row, formatFloat(times[i]))
		} else {
			row = append(row, "")
		}
		for _, c := range cols {
			if i < c.Series.Len() {
				row = append(row, formatFloat(c.Series.Values[i]))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteImpulsesCSV writes one knot,jump row per impulse.
func WriteImpulsesCSV(w io.Writer, r stoch.Realization) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"knot", "jump"}); err != nil {
		return err
	}
	for _, imp := range r {
		if err := cw.Write([]string{formatFloat(imp.Knot), formatFloat(imp.Jump)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a table written by WriteCSV back into its columns.
func ReadCSV(r io.Reader) ([]Column, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, fmt.Errorf("export: missing header")
	}

	header := records[0]
	cols := make([]Column, len(header)-1)
	for j := range cols {
		cols[j].Name = header[j+1]
	}
	for i, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("export: row %d: %w", i+1, err)
		}
		for j := range cols {
			if j+1 >= len(rec) || rec[j+1] == "" {
				continue
			}
			v, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("export: row %d column %s: %w", i+1, cols[j].Name, err)
			}
			cols[j].Series.Times = append(cols[j].Series.Times, t)
			cols[j].Series.Values = append(cols[j].Series.Values, v)
		}
	}
	return cols, nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
