// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func renderExcel(t table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.title
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &t.headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(t.headers))
		_ = f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)
	}

	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// Approximate column widths from the PDF layout hints.
	for i, w := range t.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, col, col, w/2)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
