package normalize

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

// ReadCSV reads a CSV document with a header row into a raw table.
func ReadCSV(r io.Reader, source string) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read %s: empty file", source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", source, err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}

	table := &models.Table{Source: source, Columns: columns}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}

		row := make(models.RawRow, len(columns))
		for i, col := range columns {
			row[col] = record[i]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
