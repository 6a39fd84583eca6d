package schedule

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the only accepted publish-date format.
const dateLayout = "2006-01-02"

// processedValues are the cell spellings that mean "already published".
var processedValues = map[string]bool{
	"yes":       true,
	"y":         true,
	"true":      true,
	"1":         true,
	"processed": true,
	"done":      true,
}

// Row is the typed view of one schedule row, materialized for the
// duration of a single run. The sheet itself stays the durable record.
type Row struct {
	// Number is the 1-based sheet row, usable directly in an A1 range.
	Number      int
	PublishDate time.Time
	Title       string
	Description string
	FileName    string
	ImageFileID string
	Processed   string
}

// IncompleteRowError reports a selected row missing a required field.
type IncompleteRowError struct {
	RowNumber int
	Field     string
}

func (e *IncompleteRowError) Error() string {
	return fmt.Sprintf("schedule row %d has no %s", e.RowNumber, e.Field)
}

// SelectRow scans data rows in sheet order for the first row dated target
// and not yet marked processed. It returns (nil, nil) when nothing is
// scheduled; that is the expected steady state, not an error. At most one
// row is ever selected per run.
func SelectRow(table [][]string, cols ColumnMap, target time.Time) (*Row, error) {
	if len(table) == 0 {
		return nil, nil
	}
	headerLen := len(table[0])
	ty, tm, td := target.Date()

	for r := 1; r < len(table); r++ {
		row := padRow(table[r], headerLen)

		dateCell := strings.TrimSpace(row[cols[RolePublishDate]])
		if dateCell == "" {
			continue
		}
		pub, err := time.Parse(dateLayout, dateCell)
		if err != nil {
			// Malformed dates are skipped, not fatal.
			continue
		}
		y, m, d := pub.Date()
		if y != ty || m != tm || d != td {
			continue
		}
		if isProcessed(row[cols[RoleProcessed]]) {
			continue
		}

		selected := &Row{
			Number:      r + 1,
			PublishDate: pub,
			Title:       row[cols[RoleTitle]],
			Description: row[cols[RoleDescription]],
			FileName:    row[cols[RoleFileName]],
			ImageFileID: row[cols[RoleImage]],
			Processed:   row[cols[RoleProcessed]],
		}
		if err := selected.validate(); err != nil {
			return nil, err
		}
		return selected, nil
	}
	return nil, nil
}

func (r *Row) validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return &IncompleteRowError{RowNumber: r.Number, Field: "title"}
	case strings.TrimSpace(r.FileName) == "":
		return &IncompleteRowError{RowNumber: r.Number, Field: "file name"}
	case strings.TrimSpace(r.ImageFileID) == "":
		return &IncompleteRowError{RowNumber: r.Number, Field: "image file id"}
	}
	return nil
}

func isProcessed(cell string) bool {
	return processedValues[strings.ToLower(strings.TrimSpace(cell))]
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
