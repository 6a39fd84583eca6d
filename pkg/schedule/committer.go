package schedule

import (
	"context"
	"fmt"

	shared "github.com/deepdivedevotions/publisher/pkg"
)

// processedMark is the literal written to the processed cell.
const processedMark = "yes"

// ColumnLetter converts a zero-based column index to its spreadsheet
// letter form: 0 -> A, 25 -> Z, 26 -> AA.
func ColumnLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}

// MarkProcessed writes "yes" to the row's processed cell. This is the
// last pipeline step and the only write that changes what SelectRow sees
// on a future run. No other cell is touched, so concurrent manual edits
// to the rest of the row survive.
func MarkProcessed(ctx context.Context, sheets shared.SheetValues, spreadsheetID, sheetName string, rowNumber, processedCol int) error {
	cell := fmt.Sprintf("'%s'!%s%d", sheetName, ColumnLetter(processedCol), rowNumber)
	if err := sheets.WriteRange(ctx, spreadsheetID, cell, [][]string{{processedMark}}); err != nil {
		return fmt.Errorf("mark processed %s: %w", cell, err)
	}
	return nil
}
