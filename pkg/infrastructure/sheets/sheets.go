// Package sheets adapts the Google Sheets API to the narrow range
// read/write surface the scheduler needs.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// SheetsAdapter provides spreadsheet range operations using the Sheets API.
type SheetsAdapter struct {
	Service *sheets.Service
}

func (a *SheetsAdapter) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := a.Service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets read %s: %w", readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (a *SheetsAdapter) WriteRange(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	vr := &sheets.ValueRange{Values: values}
	_, err := a.Service.Spreadsheets.Values.Update(spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets write %s: %w", writeRange, err)
	}
	return nil
}
