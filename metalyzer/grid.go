package metalyzer

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// WorksheetName is the sheet the MetaLyzer software writes everything to.
const WorksheetName = "MetasoftStudio"

// ParseError is the fatal per-file failure: unreadable input, malformed
// XML, or a workbook without the expected worksheet. Everything else
// degrades to empty sections.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse tcp export: %v", e.Err)
	}
	return fmt.Sprintf("parse tcp export %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type xmlWorkbook struct {
	Worksheets []xmlWorksheet `xml:"Worksheet"`
}

type xmlWorksheet struct {
	Name  string   `xml:"urn:schemas-microsoft-com:office:spreadsheet Name,attr"`
	Table xmlTable `xml:"Table"`
}

type xmlTable struct {
	Rows []xmlRow `xml:"Row"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"Cell"`
}

type xmlCell struct {
	Data string `xml:"Data"`
}

// readCellGrid decodes the SpreadsheetML workbook and flattens the
// MetasoftStudio worksheet into row-major cell text. Namespace and element
// details stay behind this function.
func readCellGrid(data []byte) ([][]string, error) {
	var wb xmlWorkbook
	if err := xml.Unmarshal(data, &wb); err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}
	var table *xmlTable
	for i := range wb.Worksheets {
		if wb.Worksheets[i].Name == WorksheetName {
			table = &wb.Worksheets[i].Table
			break
		}
	}
	if table == nil {
		return nil, fmt.Errorf("worksheet %q not found", WorksheetName)
	}
	grid := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, strings.TrimSpace(c.Data))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
