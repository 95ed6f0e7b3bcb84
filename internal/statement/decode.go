// Package statement turns an arbitrary bank-statement workbook into
// normalized transactions: it decodes the sheet, sniffs out the header row,
// maps ambiguous column labels to semantic roles, and normalizes each data
// row without assuming any fixed schema.
package statement

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DecodeWorkbook decodes an uploaded workbook into a grid of raw cell
// strings. Only the first sheet is read; multi-sheet files are not supported.
// Raw cell values are requested so numeric date serials survive instead of
// being rendered in the workbook's display format.
func DecodeWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("DecodeWorkbook: open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("DecodeWorkbook: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("DecodeWorkbook: read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}
