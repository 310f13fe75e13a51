package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

type XLSXEncoder struct{}

func NewXLSXEncoder() *XLSXEncoder {
	return &XLSXEncoder{}
}

func (e *XLSXEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (e *XLSXEncoder) Extension() string { return "xlsx" }

// Encode writes one line of text per row in column A.
func (e *XLSXEncoder) Encode(text string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, line := range splitLines(text) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, line); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 100); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
