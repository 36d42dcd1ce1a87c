package quote

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const estimateSheet = "Estimate"

// ExportXLSX writes the quote as a one-sheet spreadsheet: a title, the
// selection summary, every breakdown line and the total.
func ExportXLSX(q Quote, sel Selection, cat Catalog, studio string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), estimateSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if err := f.SetColWidth(estimateSheet, "A", "A", 36); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(estimateSheet, "B", "B", 16); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	siteLabel := sel.SiteTypeID
	if st, ok := cat.SiteType(sel.SiteTypeID); ok {
		siteLabel = st.Label
	}

	f.SetCellValue(estimateSheet, "A1", sanitizeCell(studio))
	f.SetCellStyle(estimateSheet, "A1", "A1", titleStyle)
	f.SetCellValue(estimateSheet, "A2", sanitizeCell(fmt.Sprintf("%s, %d pages", siteLabel, sel.PageCount)))

	f.SetCellValue(estimateSheet, "A4", "Item")
	f.SetCellValue(estimateSheet, "B4", "Price")
	f.SetCellStyle(estimateSheet, "A4", "B4", headerStyle)

	row := 5
	for _, line := range q.Breakdown {
		f.SetCellValue(estimateSheet, fmt.Sprintf("A%d", row), sanitizeCell(line.Label))
		f.SetCellValue(estimateSheet, fmt.Sprintf("B%d", row), line.Price.InexactFloat64())
		f.SetCellStyle(estimateSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), moneyStyle)
		row++
	}

	row++
	f.SetCellValue(estimateSheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(estimateSheet, fmt.Sprintf("B%d", row), q.Total.InexactFloat64())
	f.SetCellStyle(estimateSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), totalStyle)
	row++
	f.SetCellValue(estimateSheet, fmt.Sprintf("A%d", row), "Completeness %")
	f.SetCellValue(estimateSheet, fmt.Sprintf("B%d", row), q.CompletenessPercent)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeCell prefixes values that spreadsheet apps would treat as formulas.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
